package files

// ReadFilesArgs asks for the content of one or more files. Every successful
// read also records a fresh whitelist entry, which is what authorizes a
// later edit of the same path by the same session.
type ReadFilesArgs struct {
	FilePaths []string `json:"file_paths" jsonschema:"required,description=The absolute or relative paths of the files to read." validate:"required,min=1,dive,required"`
	SessionID string   `json:"session_id" jsonschema:"required,description=The session identifier that will own the freshness records." validate:"required"`
}

// FileContent is the per-path result of a ReadFiles call. Error is set and
// Content empty when that path failed; other paths are unaffected.
type FileContent struct {
	Path        string `json:"path"`
	Content     string `json:"content,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ReadFilesResponse reports one FileContent per requested path, in request
// order. Success is true only when every path was read.
type ReadFilesResponse struct {
	Success bool          `json:"success"`
	Files   []FileContent `json:"files"`
}

// WriteOrEditArgs is one file write or edit. PercentageToChange declares how
// much of the file the payload changes: at or above the configured threshold
// the payload is the literal full content, below it the payload holds
// search/replace blocks.
type WriteOrEditArgs struct {
	FilePath                  string `json:"file_path" jsonschema:"required,description=The absolute or relative path of the file to write or edit." validate:"required"`
	PercentageToChange        int    `json:"percentage_to_change" jsonschema:"required,description=Declared percentage of the file that will change (0-100). Use 100 for full rewrites and new files." validate:"min=0,max=100"`
	FileContentOrPatchPayload string `json:"file_content_or_patch_payload" jsonschema:"required,description=The full new file content or one or more search/replace blocks."`
	SessionID                 string `json:"session_id" jsonschema:"required,description=The session identifier whose freshness record gates the edit." validate:"required"`
}

// WriteOrEditResponse reports a committed write. Warnings are advisory syntax
// findings about the new content; they never indicate failure.
type WriteOrEditResponse struct {
	Success        bool     `json:"success"`
	ContentSummary string   `json:"content_summary"`
	Diff           string   `json:"diff,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	Fingerprint    string   `json:"fingerprint"`
}
