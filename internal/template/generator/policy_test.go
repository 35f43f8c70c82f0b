package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicies(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		want   map[FailureKind]Action
	}{
		{
			name:   "default",
			policy: DefaultPolicy(),
			want: map[FailureKind]Action{
				FailModelLoad:        Skip,
				FailPathQuery:        Skip,
				FailAdaptation:       Skip,
				FailRender:           Abort,
				FailMissingAttribute: Abort,
				FailWrite:            Abort,
			},
		},
		{
			name:   "strict",
			policy: StrictPolicy(),
			want: map[FailureKind]Action{
				FailModelLoad: Abort, FailPathQuery: Abort, FailAdaptation: Abort,
				FailRender: Abort, FailMissingAttribute: Abort, FailWrite: Abort,
			},
		},
		{
			name:   "lenient",
			policy: LenientPolicy(),
			want: map[FailureKind]Action{
				FailModelLoad: Skip, FailPathQuery: Skip, FailAdaptation: Skip,
				FailRender: Skip, FailMissingAttribute: Skip, FailWrite: Skip,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for kind, want := range tt.want {
				assert.Equal(t, want, tt.policy.Action(kind), "kind %s", kind)
			}
			assert.Equal(t, tt.name, tt.policy.String())
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, name := range []string{"", "default", "Strict", " lenient "} {
		_, err := ParsePolicy(name)
		assert.NoError(t, err, name)
	}
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyDefault, p.String())

	_, err = ParsePolicy("yolo")
	assert.Error(t, err)
}

func TestPolicy_With(t *testing.T) {
	base := DefaultPolicy()
	p := base.With(FailPathQuery, Abort)

	assert.Equal(t, Abort, p.Action(FailPathQuery))
	assert.Equal(t, Skip, base.Action(FailPathQuery))
	assert.Equal(t, "custom", p.String())
	assert.Equal(t, Abort, p.Action(FailureKind(99)))
}
