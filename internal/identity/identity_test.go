package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Resolution
	}{
		{
			name: "authenticated member",
			in:   Input{IsAuthenticated: true, Username: "jonas", AllowGuests: true},
			want: Resolution{Kind: KindAuthenticated, ResponderKey: "jonas"},
		},
		{
			name: "authenticated wins even when a guest name was typed",
			in:   Input{IsAuthenticated: true, Username: "jonas", GuestName: "someone else"},
			want: Resolution{Kind: KindAuthenticated, ResponderKey: "jonas"},
		},
		{
			name: "guest allowed without code",
			in:   Input{AllowGuests: true, GuestName: "Sam"},
			want: Resolution{Kind: KindGuest, ResponderKey: "Sam"},
		},
		{
			name: "guest name is trimmed",
			in:   Input{AllowGuests: true, GuestName: "  Sam "},
			want: Resolution{Kind: KindGuest, ResponderKey: "Sam"},
		},
		{
			name: "guests disallowed and unauthenticated",
			in:   Input{GuestName: "Sam"},
			want: Resolution{Kind: KindRejected, Reason: ReasonGuestsDisallowed},
		},
		{
			name: "guest without a name",
			in:   Input{AllowGuests: true, GuestName: "   "},
			want: Resolution{Kind: KindRejected, Reason: ReasonMissingGuestName},
		},
		{
			name: "guest with empty code when a code is required",
			in:   Input{AllowGuests: true, RequireCode: true, GuestName: "Sam"},
			want: Resolution{Kind: KindRejected, Reason: ReasonMissingCode},
		},
		{
			name: "guest with code",
			in:   Input{AllowGuests: true, RequireCode: true, GuestName: "Sam", VerificationCode: "4711"},
			want: Resolution{Kind: KindGuest, ResponderKey: "Sam", VerificationCode: "4711"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
		})
	}
}

// Resolution is a pure function of its inputs.
func TestResolveIsIdempotent(t *testing.T) {
	in := Input{AllowGuests: true, RequireCode: true, GuestName: "Sam", VerificationCode: "4711"}

	first := Resolve(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Resolve(in))
	}
}

func TestAlreadyResponded(t *testing.T) {
	responders := []string{"jonas", "Sam", "Lena Weber"}

	assert.True(t, AlreadyResponded("Sam", responders))
	assert.False(t, AlreadyResponded("sam", responders), "keys are case sensitive")
	assert.False(t, AlreadyResponded("Alex", responders))
	assert.False(t, AlreadyResponded("Alex", nil))
}
