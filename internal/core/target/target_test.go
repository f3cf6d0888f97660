package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{in: "", want: DefaultBranch()},
		{in: "   ", want: DefaultBranch()},
		{in: "main", want: Ref("main")},
		{in: "origin/main", want: Ref("origin/main")},
		{in: "HEAD~3", want: Ref("HEAD~3")},
		{in: "v1.2.3", want: Ref("v1.2.3")},
		{in: "42", want: ChangeRequest(42)},
		{in: "#42", want: ChangeRequest(42)},
		{in: "007", want: ChangeRequest(7)},
		{in: "42a", want: Ref("42a")},
		{in: "#", wantErr: true},
		{in: "#abc", wantErr: true},
		{in: "99999999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTarget_String(t *testing.T) {
	assert.Equal(t, "default branch", DefaultBranch().String())
	assert.Equal(t, "feature", Ref("feature").String())
	assert.Equal(t, "#12", ChangeRequest(12).String())
}

func TestSelector(t *testing.T) {
	_, ok := AllChanges.Index()
	assert.False(t, ok)
	assert.Equal(t, "all changes", AllChanges.String())

	i, ok := CommitIndex(2).Index()
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, "commit 2", CommitIndex(2).String())
}
