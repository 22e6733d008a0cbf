package archive

// Member is one row of an archive's table of contents. Path is the full
// member path, '/'-separated; directory members usually carry size 0.
type Member struct {
	Path  string
	IsDir bool
	Size  int64
}
