package port

// FileRemover deletes files. There is no rollback; a failed removal is
// non-fatal to an eviction run. The seam also lets tests prove that
// dry-run mode never deletes anything.
type FileRemover interface {
	Remove(path string) error
}
