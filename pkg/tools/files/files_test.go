package files

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/editkit/pkg/editor"
	"github.com/hamzaessahbaoui/editkit/pkg/whitelist"
	"github.com/hamzaessahbaoui/editkit/toolkit"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(editor.New(whitelist.NewStore(), editor.Config{}))
}

func TestWriteOrEdit_CreateThenBlockEdit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "f.py")

	// Creating a new file needs no prior read.
	created, err := svc.WriteOrEdit(ctx, WriteOrEditArgs{
		FilePath:                  path,
		PercentageToChange:        100,
		FileContentOrPatchPayload: "def f():\n    return 1\n",
		SessionID:                 "sess1",
	})
	require.NoError(t, err)
	resp := created.(WriteOrEditResponse)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Fingerprint)

	// The successful write left the session fresh, so a block edit follows
	// without an intervening read.
	edited, err := svc.WriteOrEdit(ctx, WriteOrEditArgs{
		FilePath:           path,
		PercentageToChange: 10,
		FileContentOrPatchPayload: "<<<<<<< SEARCH\n" +
			"    return 1\n" +
			"=======\n" +
			"    return 2\n" +
			">>>>>>> REPLACE\n",
		SessionID: "sess1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, resp.Fingerprint, edited.(WriteOrEditResponse).Fingerprint)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "def f():\n    return 2\n", string(data))
}

func TestWriteOrEdit_UnreadFileRejectedWithCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))

	_, err := svc.WriteOrEdit(ctx, WriteOrEditArgs{
		FilePath:                  path,
		PercentageToChange:        100,
		FileContentOrPatchPayload: `{"a":2}`,
		SessionID:                 "sess1",
	})
	require.Error(t, err)

	tkErr, ok := err.(toolkit.ToolKitError)
	require.True(t, ok, "engine failures must surface as toolkit errors")
	assert.Equal(t, editor.CodeWhitelistViolation, tkErr.Code)
	assert.Contains(t, tkErr.Message, "unknown")
}

func TestWriteOrEdit_ParseErrorCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "f.go")
	require.NoError(t, os.WriteFile(path, []byte("package f\n"), 0644))

	_, err := svc.ReadFiles(ctx, ReadFilesArgs{FilePaths: []string{path}, SessionID: "sess1"})
	require.NoError(t, err)

	_, err = svc.WriteOrEdit(ctx, WriteOrEditArgs{
		FilePath:                  path,
		PercentageToChange:        10,
		FileContentOrPatchPayload: "no blocks here",
		SessionID:                 "sess1",
	})
	require.Error(t, err)
	tkErr, ok := err.(toolkit.ToolKitError)
	require.True(t, ok)
	assert.Equal(t, editor.CodeParseError, tkErr.Code)
}

func TestReadFiles_PerPathErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	dir := t.TempDir()
	good := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(good, []byte("hello\n"), 0644))
	missing := filepath.Join(dir, "absent.txt")

	result, err := svc.ReadFiles(ctx, ReadFilesArgs{
		FilePaths: []string{good, missing},
		SessionID: "sess1",
	})
	require.NoError(t, err, "per-path failures never fail the whole call")

	resp := result.(ReadFilesResponse)
	assert.False(t, resp.Success)
	require.Len(t, resp.Files, 2)

	assert.Equal(t, "hello\n", resp.Files[0].Content)
	assert.NotEmpty(t, resp.Files[0].Fingerprint)
	assert.Empty(t, resp.Files[0].Error)

	assert.Empty(t, resp.Files[1].Content)
	assert.NotEmpty(t, resp.Files[1].Error)
}

func TestReadFiles_AuthorizesEdit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0644))

	_, err := svc.ReadFiles(ctx, ReadFilesArgs{FilePaths: []string{path}, SessionID: "sess2"})
	require.NoError(t, err)

	_, err = svc.WriteOrEdit(ctx, WriteOrEditArgs{
		FilePath:           path,
		PercentageToChange: 10,
		FileContentOrPatchPayload: "<<<<<<< SEARCH\n" +
			"beta\n" +
			"=======\n" +
			"gamma\n" +
			">>>>>>> REPLACE\n",
		SessionID: "sess2",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha\ngamma\n", string(data))
}

func TestParent_RoutesChildren(t *testing.T) {
	svc := newTestService(t)
	parent := svc.Parent()
	require.Equal(t, ParentName, parent.GetName())
	require.Contains(t, parent.GetChildren(), "read_files")
	require.Contains(t, parent.GetChildren(), "file_write_or_edit")

	path := filepath.Join(t.TempDir(), "routed.txt")
	writeArgs, err := json.Marshal(WriteOrEditArgs{
		FilePath:                  path,
		PercentageToChange:        100,
		FileContentOrPatchPayload: "routed\n",
		SessionID:                 "sess1",
	})
	require.NoError(t, err)
	readArgs, err := json.Marshal(ReadFilesArgs{FilePaths: []string{path}, SessionID: "sess1"})
	require.NoError(t, err)

	resp := parent.HandleChildren(context.Background(), []toolkit.ToolKitChild{
		{Name: "file_write_or_edit", Args: writeArgs},
		{Name: "read_files", Args: readArgs},
	})

	require.Len(t, resp.ChildsResponses, 2)
	write, ok := resp.ChildsResponses[0].Response.(WriteOrEditResponse)
	require.True(t, ok, "unexpected response: %+v", resp.ChildsResponses[0].Response)
	assert.True(t, write.Success)

	read, ok := resp.ChildsResponses[1].Response.(ReadFilesResponse)
	require.True(t, ok)
	assert.Equal(t, "routed\n", read.Files[0].Content)
}

func TestParent_ValidationRejectsMissingSession(t *testing.T) {
	svc := newTestService(t)
	parent := svc.Parent()

	resp := parent.HandleChildren(context.Background(), []toolkit.ToolKitChild{
		{Name: "read_files", Args: json.RawMessage(`{"file_paths":["/tmp/x"]}`)},
	})

	require.Len(t, resp.ChildsResponses, 1)
	tkErr, ok := resp.ChildsResponses[0].Response.(toolkit.ToolKitError)
	require.True(t, ok)
	assert.Equal(t, "invalid_arguments", tkErr.Code)
}
