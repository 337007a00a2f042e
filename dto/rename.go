package dto

import "dto-inflator/record"

// expandShortKeys rewrites short aliases to attribute names. Other keys
// pass through. When an alias and its long name are both present, the
// one later in key order wins.
func expandShortKeys(rec record.Record, longByShort map[string]string) record.Record {
	if len(longByShort) == 0 {
		return rec
	}

	out := make(record.Record, len(rec))

	for _, key := range rec.Keys() {
		if long, ok := longByShort[key]; ok {
			out[long] = rec[key]
			continue
		}

		out[key] = rec[key]
	}

	return out
}

// renameField maps an alternate input name to its attribute name.
func renameField(key string, renames map[string]string) string {
	if to, ok := renames[key]; ok {
		return to
	}

	return key
}
