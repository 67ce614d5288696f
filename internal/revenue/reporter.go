package revenue

import (
	"context"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Line struct {
	Order salon.Order     `json:"order"`
	Value decimal.Decimal `json:"value"`
}

type Report struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// Reporter sums the value of delivered orders. Pending orders never count.
type Reporter struct {
	Orders salon.OrderStore
	Log    *zap.Logger
}

func NewReporter(orders salon.OrderStore, log *zap.Logger) *Reporter {
	return &Reporter{Orders: orders, Log: log}
}

// TotalDelivered recomputes the total from scratch on every call. Each value
// counts for its leading number, zero when it has none.
func (r *Reporter) TotalDelivered(ctx context.Context) (*Report, error) {
	orders, err := r.Orders.ListDelivered(ctx)
	if err != nil {
		r.Log.Error("list delivered orders failed", zap.Error(err))
		return nil, err
	}

	rep := &Report{Lines: make([]Line, 0, len(orders)), Total: decimal.Zero}
	for _, o := range orders {
		v := salon.ParseOrderValue(o.OrderValue)
		rep.Lines = append(rep.Lines, Line{Order: o, Value: v})
		rep.Total = rep.Total.Add(v)
	}
	return rep, nil
}

// Format renders an amount the way the revenue screen shows it.
func Format(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}
