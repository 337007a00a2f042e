package dto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dto-inflator/dto"
	"dto-inflator/record"
)

type Person struct {
	dto.Base

	FirstName    string `dto:"firstName"`
	Age          int    `dto:"age"`
	Pets         []*Pet `dto:"pets"`
	FavouritePet *Pet   `dto:"favouritePet"`
}

func (*Person) ClassMap() map[string]string {
	return map[string]string{
		"pets":         `\Fixtures\Pet[]`,
		"favouritePet": `\Fixtures\Pet`,
	}
}

func (*Person) FieldRenameMap() map[string]string {
	return map[string]string{"name": "firstName"}
}

type Pet struct {
	dto.Base

	Type  string  `dto:"type"`
	Name  string  `dto:"name"`
	Foods []*Food `dto:"foods"`
}

func (*Pet) ClassMap() map[string]string {
	return map[string]string{"foods": `Fixtures\Food[]`}
}

type Food struct {
	dto.Base

	Ingredient string `dto:"ingredient"`
}

type User struct {
	dto.Base

	FirstName          string    `dto:"firstName"`
	LastName           string    `dto:"lastName"`
	KeyNotInShortArray string    `dto:"keyNotInShortArray"`
	Food               *UserFood `dto:"food"`
}

func (*User) ClassMap() map[string]string {
	return map[string]string{"food": `Fixtures\UserFood`}
}

func (*User) ShortKeyMap() map[string]string {
	return map[string]string{"firstName": "fn", "lastName": "ln"}
}

type UserFood struct {
	dto.Base

	Ingredient string `dto:"ingredient"`
	Colour     string `dto:"colour"`
}

func (*UserFood) ShortKeyMap() map[string]string {
	return map[string]string{"colour": "c"}
}

func newRegistry(t *testing.T) *dto.Registry {
	t.Helper()

	reg := dto.NewRegistry()
	require.NoError(t, dto.Register[Person](reg, `\Fixtures\Person`))
	require.NoError(t, dto.Register[Pet](reg, `\Fixtures\Pet`))
	require.NoError(t, dto.Register[Food](reg, `\Fixtures\Food`))
	require.NoError(t, dto.Register[User](reg, `\Fixtures\User`))
	require.NoError(t, dto.Register[UserFood](reg, `\Fixtures\UserFood`))

	return reg
}

func newEngine(t *testing.T, opts ...dto.Option) *dto.Engine {
	t.Helper()

	return dto.New(newRegistry(t), opts...)
}

func petRecord(name string, ingredients ...string) record.Record {
	foods := make([]any, len(ingredients))
	for i, ing := range ingredients {
		foods[i] = record.Record{"ingredient": ing}
	}

	return record.Record{"type": "dog", "name": name, "foods": foods}
}
