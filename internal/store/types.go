package store

// Record is the session context written after every command. The same shape is
// reused for the failure record so consumers can decode both files identically.
type Record struct {
	LastCommand  string `json:"last_command"`
	LastExitCode int    `json:"last_exit_code"`
	// Duration is whole elapsed seconds between command capture and
	// finalization, in both shell dialects.
	Duration         int64  `json:"duration"`
	WorkingDirectory string `json:"working_directory"`
	ShellType        string `json:"shell_type"`
	// Timestamp is seconds since epoch at finalization time.
	Timestamp int64 `json:"timestamp"`
}
