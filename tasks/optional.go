package tasks

import "encoding/json"

// Optional distinguishes an absent JSON field from an explicit null, which
// matters for clearable task fields like assigneeId and dueAt.
type Optional[T any] struct {
	Set   bool
	Value *T // nil when the field was an explicit null
}

var _ json.Unmarshaler = (*Optional[string])(nil)

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}
