package domain

// ProgressFunc reports pagination progress.
// Called with the running item count after each page: 300, 600, 612, ...
type ProgressFunc func(offset int)
