package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name string
		user User
		want string
	}{
		{"full name", User{FirstName: "Ana", MiddleName: "Maria", LastName: "Lopez"}, "Ana Maria Lopez"},
		{"no middle name", User{FirstName: "Ana", LastName: "Lopez"}, "Ana Lopez"},
		{"first only", User{FirstName: "Ana"}, "Ana"},
		{"empty", User{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.user.DisplayName())
		})
	}
}
