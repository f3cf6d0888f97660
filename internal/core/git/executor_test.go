package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/lado/internal/core/diff"
	"github.com/colonyops/lado/pkg/executil"
)

var errExit = errors.New("exit status 1")

func TestExecutor_ResolveRef(t *testing.T) {
	tests := []struct {
		name    string
		outputs map[string][]byte
		want    string
		wantErr error
	}{
		{
			name: "local branch",
			outputs: map[string][]byte{
				"git rev-parse --verify --quiet refs/heads/feature^{commit}": []byte("aaa\n"),
			},
			want: "aaa",
		},
		{
			name: "origin branch",
			outputs: map[string][]byte{
				"git rev-parse --verify --quiet refs/remotes/origin/feature^{commit}": []byte("bbb\n"),
			},
			want: "bbb",
		},
		{
			name: "revision expression",
			outputs: map[string][]byte{
				"git rev-parse --verify --quiet feature^{commit}": []byte("ccc\n"),
			},
			want: "ccc",
		},
		{
			name:    "unresolvable",
			wantErr: ErrSnapshotNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &executil.RecordingExecutor{
				Outputs: tt.outputs,
				Errors:  map[string]error{"git rev-parse": errExit},
			}
			e := NewExecutor("git", "/repo", 3, rec)

			got, err := e.ResolveRef(context.Background(), "feature")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, c := range rec.Commands {
				assert.Equal(t, "/repo", c.Dir)
			}
		})
	}
}

func TestExecutor_ResolveRef_Order(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"git rev-parse --verify --quiet refs/heads/dev^{commit}":          []byte("local"),
			"git rev-parse --verify --quiet refs/remotes/origin/dev^{commit}": []byte("remote"),
		},
	}
	e := NewExecutor("git", "", 3, rec)

	got, err := e.ResolveRef(context.Background(), "dev")
	require.NoError(t, err)
	assert.Equal(t, "local", got)
	assert.Len(t, rec.Commands, 1)
}

func TestExecutor_DefaultBranch(t *testing.T) {
	tests := []struct {
		name    string
		outputs map[string][]byte
		want    string
		wantErr error
	}{
		{
			name:    "main",
			outputs: map[string][]byte{"git rev-parse --verify --quiet refs/heads/main^{commit}": []byte("1")},
			want:    "main",
		},
		{
			name:    "master",
			outputs: map[string][]byte{"git rev-parse --verify --quiet refs/heads/master^{commit}": []byte("1")},
			want:    "master",
		},
		{
			name: "local master beats origin main",
			outputs: map[string][]byte{
				"git rev-parse --verify --quiet refs/heads/master^{commit}":         []byte("1"),
				"git rev-parse --verify --quiet refs/remotes/origin/main^{commit}": []byte("2"),
			},
			want: "master",
		},
		{
			name:    "origin main",
			outputs: map[string][]byte{"git rev-parse --verify --quiet refs/remotes/origin/main^{commit}": []byte("1")},
			want:    "main",
		},
		{
			name:    "none",
			wantErr: ErrNoDefaultBranch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &executil.RecordingExecutor{
				Outputs: tt.outputs,
				Errors:  map[string]error{"git rev-parse": errExit},
			}
			e := NewExecutor("git", "", 3, rec)

			got, err := e.DefaultBranch(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecutor_Head(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"git rev-parse --verify --quiet HEAD^{commit}": []byte("deadbeef\n")},
	}
	e := NewExecutor("git", "", 3, rec)

	got, err := e.Head(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", got)

	empty := NewExecutor("git", "", 3, &executil.RecordingExecutor{})
	_, err = empty.Head(context.Background())
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}

const cliDiff = `diff --git a/file.go b/file.go
index abc123..def456 100644
--- a/file.go
+++ b/file.go
@@ -1,3 +1,4 @@
 package main
 
 func main() {
+	fmt.Println("hello")
`

func TestExecutor_Diff(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"git diff": []byte(cliDiff)},
	}
	e := NewExecutor("/usr/bin/git", "/repo", 5, rec)

	data, err := e.Diff(context.Background(), "base", "head")
	require.NoError(t, err)

	require.Len(t, rec.Commands, 1)
	cmd := rec.Commands[0]
	assert.Equal(t, "/usr/bin/git", cmd.Cmd)
	assert.Equal(t, "/repo", cmd.Dir)
	assert.Contains(t, cmd.Args, "-U5")
	assert.Equal(t, []string{"base", "head"}, cmd.Args[len(cmd.Args)-2:])

	assert.Equal(t, []diff.ChangedFile{{Path: "file.go", Status: diff.StatusModified, Additions: 1}}, data.Files)
	require.Len(t, data.Hunks["file.go"], 1)
	assert.Len(t, data.Hunks["file.go"][0].Lines, 4)
}

func TestExecutor_DiffFailure(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Errors: map[string]error{"git diff": errors.New("exec git: fatal: bad revision")},
	}
	e := NewExecutor("git", "", 3, rec)

	_, err := e.Diff(context.Background(), "x", "y")
	require.ErrorIs(t, err, ErrDiffFailed)
	assert.Contains(t, err.Error(), "bad revision")
}

func TestExecutor_RemoteURL(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"git remote get-url origin": []byte("git@github.com:colonyops/lado.git\n")},
	}
	e := NewExecutor("git", "", 3, rec)

	got, err := e.RemoteURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:colonyops/lado.git", got)
}
