package mutate

import "errors"

// ErrEmptyTitle is returned when a title is empty after trimming surrounding
// whitespace. The model is untouched; callers surface this as "nothing to
// add" / keep the edit dialog open.
var ErrEmptyTitle = errors.New("empty title")
