package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventSearchIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		search EventSearch
		want   bool
	}{
		{"all blank", EventSearch{}, true},
		{"whitespace only", EventSearch{Title: "   ", Date: "\t"}, true},
		{"title set", EventSearch{Title: "gopher"}, false},
		{"date set", EventSearch{Date: "2026-09-01"}, false},
		{"category set", EventSearch{Category: "tech"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.search.IsEmpty())
		})
	}
}

func TestEventSearchValuesSkipsBlanks(t *testing.T) {
	values := EventSearch{Title: " gopher ", Category: ""}.Values()

	assert.Equal(t, "gopher", values.Get("title"))
	assert.False(t, values.Has("date"))
	assert.False(t, values.Has("category"))
}

func TestRoleIsAdmin(t *testing.T) {
	assert.False(t, RoleUser.IsAdmin())
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, RoleSuperAdmin.IsAdmin())

	var nobody *User
	assert.False(t, nobody.IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}

func TestEventCapacityHelpers(t *testing.T) {
	event := Event{Capacity: 100, AvailableSpots: 0}
	assert.True(t, event.IsFull())
	assert.Equal(t, 100, event.RegisteredCount())

	event.AvailableSpots = 40
	assert.False(t, event.IsFull())
	assert.Equal(t, 60, event.RegisteredCount())
}

func TestLoginInputValidate(t *testing.T) {
	assert.Error(t, LoginInput{}.Validate())
	assert.Error(t, LoginInput{Email: "not-an-email", Password: "x"}.Validate())
	assert.NoError(t, LoginInput{Email: "amira@example.com", Password: "hunter22"}.Validate())
}

func TestSignupInputValidate(t *testing.T) {
	valid := SignupInput{Username: "amira", Email: "amira@example.com", Password: "hunter22"}
	assert.NoError(t, valid.Validate())

	short := valid
	short.Password = "abc"
	assert.Error(t, short.Validate())

	noName := valid
	noName.Username = ""
	assert.Error(t, noName.Validate())
}

func TestEventInputValidate(t *testing.T) {
	valid := EventInput{
		Title:    "GopherCon",
		Date:     "2026-09-01",
		Location: "Berlin",
		Category: "tech",
		Capacity: 200,
	}
	assert.NoError(t, valid.Validate())

	badDate := valid
	badDate.Date = "next tuesday"
	assert.Error(t, badDate.Validate())

	noCapacity := valid
	noCapacity.Capacity = 0
	assert.Error(t, noCapacity.Validate())
}

func TestRejectInputValidate(t *testing.T) {
	assert.Error(t, RejectInput{}.Validate())
	assert.NoError(t, RejectInput{Reason: "event is at capacity"}.Validate())
}
