package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"dto-inflator/internal/common"
)

// attribute is one declared attribute of a DTO type.
type attribute struct {
	name      string
	index     []int // field index path; nil for dynamic types
	omitEmpty bool
}

// typeMeta is the compiled mapping metadata of a DTO type.
type typeMeta struct {
	name  string
	rtype reflect.Type // struct type; nil for dynamic types

	attrs  []attribute
	byName map[string]int

	classMap    map[string]Nested
	renames     map[string]string // alternate name -> attribute name
	shortKeys   map[string]string // attribute name -> short alias
	longByShort map[string]string
}

func (m *typeMeta) isDynamic() bool {
	return m.rtype == nil
}

func (m *typeMeta) attribute(name string) (attribute, bool) {
	i, ok := m.byName[name]
	if !ok {
		return attribute{}, false
	}

	return m.attrs[i], true
}

func (m *typeMeta) addAttribute(a attribute) error {
	if IsReserved(a.name) {
		return fmt.Errorf("%w: %s: attribute %q uses a reserved name", ErrInvalidDefinition, m.name, a.name)
	}

	if _, ok := m.byName[a.name]; ok {
		return fmt.Errorf("%w: %s: attribute %q declared twice", ErrInvalidDefinition, m.name, a.name)
	}

	m.byName[a.name] = len(m.attrs)
	m.attrs = append(m.attrs, a)

	return nil
}

// setMaps parses and stores the three metadata maps.
func (m *typeMeta) setMaps(classMap, renames, shortKeys map[string]string) error {
	m.classMap = make(map[string]Nested, len(classMap))

	for _, key := range common.SortedKeys(classMap) {
		n, err := ParseNested(classMap[key])
		if err != nil {
			return fmt.Errorf("%w: %s: class map entry %q: %w", ErrInvalidDefinition, m.name, key, err)
		}

		m.classMap[key] = n
	}

	m.renames = maps.Clone(renames)
	if m.renames == nil {
		m.renames = map[string]string{}
	}

	m.shortKeys = maps.Clone(shortKeys)
	if m.shortKeys == nil {
		m.shortKeys = map[string]string{}
	}

	m.longByShort = common.Invert(m.shortKeys)

	return nil
}

func (m *typeMeta) newInstance() DTO {
	if m.isDynamic() {
		return &Dynamic{meta: m, attrs: map[string]any{}}
	}

	return reflect.New(m.rtype).Interface().(DTO)
}

// value returns the attribute value of inst and whether it is empty.
func (m *typeMeta) value(inst DTO, a attribute) (any, bool) {
	if m.isDynamic() {
		v := inst.(*Dynamic).attrs[a.name]
		return v, v == nil
	}

	fv := reflect.ValueOf(inst).Elem().FieldByIndex(a.index)

	return fv.Interface(), fv.IsZero()
}

// compileStruct builds the metadata of a struct type that embeds Base.
func compileStruct(rt reflect.Type, name string) (*typeMeta, error) {
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidDefinition, rt)
	}

	if name == "" {
		name = rt.Name()
	}

	m := &typeMeta{name: name, rtype: rt, byName: map[string]int{}}

	embedsBase := false

	for _, sf := range reflect.VisibleFields(rt) {
		if sf.Anonymous && len(sf.Index) == 1 && sf.Type == baseType {
			embedsBase = true
			continue
		}

		if sf.Anonymous || !sf.IsExported() || behindPointer(rt, sf.Index) {
			continue
		}

		attrName, omitEmpty, skip := attributeName(sf)
		if skip {
			continue
		}

		if err := m.addAttribute(attribute{name: attrName, index: sf.Index, omitEmpty: omitEmpty}); err != nil {
			return nil, err
		}
	}

	if !embedsBase {
		return nil, fmt.Errorf("%w: %s does not embed dto.Base", ErrInvalidDefinition, rt)
	}

	var classMap, renames, shortKeys map[string]string

	inst := reflect.New(rt).Interface()

	if cm, ok := inst.(ClassMapper); ok {
		classMap = cm.ClassMap()
	}

	if fr, ok := inst.(FieldRenamer); ok {
		renames = fr.FieldRenameMap()
	}

	if sk, ok := inst.(ShortKeyMapper); ok {
		shortKeys = sk.ShortKeyMap()
	}

	if err := m.setMaps(classMap, renames, shortKeys); err != nil {
		return nil, err
	}

	return m, nil
}

// behindPointer reports whether a promoted field is reached through an
// embedded pointer, which a fresh instance leaves nil.
func behindPointer(rt reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := rt.Field(i)
		if f.Type.Kind() == reflect.Pointer {
			return true
		}

		rt = f.Type
	}

	return false
}

// attributeName reads the dto tag, falling back to the json tag and then
// to the Go field name.
func attributeName(sf reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag, ok := sf.Tag.Lookup("dto")
	if !ok {
		tag, ok = sf.Tag.Lookup("json")
	}

	if !ok {
		return sf.Name, false, false
	}

	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")

	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}

	if name == "" {
		name = sf.Name
	}

	return name, omitEmpty, false
}

// compileDefinition builds the metadata of a runtime-declared type.
func compileDefinition(def Definition) (*typeMeta, error) {
	name := CanonicalName(def.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty type name", ErrInvalidDefinition)
	}

	if !IsValidTypeName(name) {
		return nil, fmt.Errorf("%w: invalid type name %q", ErrInvalidDefinition, def.Name)
	}

	m := &typeMeta{name: name, byName: map[string]int{}}

	for _, attr := range def.Attributes {
		if attr == "" {
			return nil, fmt.Errorf("%w: %s: empty attribute name", ErrInvalidDefinition, name)
		}

		if err := m.addAttribute(attribute{name: attr}); err != nil {
			return nil, err
		}
	}

	if err := m.setMaps(def.ClassMap, def.FieldRenameMap, def.ShortKeyMap); err != nil {
		return nil, err
	}

	return m, nil
}

// describe returns the public description of the metadata.
func (m *typeMeta) describe() Description {
	d := Description{
		Name:           m.name,
		Attributes:     make([]string, 0, len(m.attrs)),
		ClassMap:       maps.Clone(m.classMap),
		FieldRenameMap: maps.Clone(m.renames),
		ShortKeyMap:    maps.Clone(m.shortKeys),
		Dynamic:        m.isDynamic(),
	}

	for _, a := range m.attrs {
		d.Attributes = append(d.Attributes, a.name)
	}

	if m.rtype != nil {
		d.GoType = m.rtype.String()
	}

	return d
}

// Description is a read-only view of a registered type's metadata.
type Description struct {
	Name           string
	GoType         string // empty for dynamic types
	Attributes     []string
	ClassMap       map[string]Nested
	FieldRenameMap map[string]string
	ShortKeyMap    map[string]string
	Dynamic        bool
}
