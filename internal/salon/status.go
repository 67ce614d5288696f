package salon

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusDelivered:
		return Status(s), nil
	case "":
		return StatusPending, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

func (s Status) Delivered() bool { return s == StatusDelivered }

// FilterByStatus keeps the orders whose delivered flag matches status. The
// pending and delivered subsets of any slice are disjoint and together hold
// every order.
func FilterByStatus(orders []Order, status Status) []Order {
	want := status.Delivered()
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Delivered == want {
			out = append(out, o)
		}
	}
	return out
}
