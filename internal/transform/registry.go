package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (CaseTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("shift_refund_date", createShiftRefundDate)
	registry.Register("set_refund_date", createSetRefundDate)
	registry.Register("refund_on_day", createRefundOnDay)
	registry.Register("set_start_date", createSetStartDate)
	registry.Register("set_tier", createSetTier)
	registry.Register("set_price", createSetPurchasePrice)
	registry.Register("set_kind", createSetKind)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (CaseTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "shift_refund_date:months=1,days=3"
func (r *TransformRegistry) ParseTransformSpec(spec string) (CaseTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createShiftRefundDate(params map[string]string) (CaseTransform, error) {
	monthsStr, hasMonths := params["months"]
	daysStr, hasDays := params["days"]
	if !hasMonths && !hasDays {
		return nil, fmt.Errorf("shift_refund_date requires 'months' or 'days' parameter")
	}

	t := &ShiftRefundDate{}
	var err error
	if hasMonths {
		if t.Months, err = strconv.Atoi(monthsStr); err != nil {
			return nil, fmt.Errorf("invalid months value: %w", err)
		}
	}
	if hasDays {
		if t.Days, err = strconv.Atoi(daysStr); err != nil {
			return nil, fmt.Errorf("invalid days value: %w", err)
		}
	}
	return t, nil
}

func requireDate(name string, params map[string]string) (time.Time, error) {
	dateStr, ok := params["date"]
	if !ok {
		return time.Time{}, fmt.Errorf("%s requires 'date' parameter", name)
	}
	d, err := dateutil.Parse(dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}
	return d, nil
}

func createSetRefundDate(params map[string]string) (CaseTransform, error) {
	d, err := requireDate("set_refund_date", params)
	if err != nil {
		return nil, err
	}
	return &SetRefundDate{Date: d}, nil
}

func createSetStartDate(params map[string]string) (CaseTransform, error) {
	d, err := requireDate("set_start_date", params)
	if err != nil {
		return nil, err
	}
	return &SetStartDate{Date: d}, nil
}

func createRefundOnDay(params map[string]string) (CaseTransform, error) {
	dayStr, ok := params["day"]
	if !ok {
		return nil, fmt.Errorf("refund_on_day requires 'day' parameter")
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid day value: %w", err)
	}
	return &RefundOnDay{Day: day}, nil
}

func createSetTier(params map[string]string) (CaseTransform, error) {
	tierStr, ok := params["tier"]
	if !ok {
		return nil, fmt.Errorf("set_tier requires 'tier' parameter")
	}
	tier, err := domain.ParsePassTier(tierStr)
	if err != nil {
		return nil, err
	}
	return &SetTier{Tier: tier}, nil
}

func createSetPurchasePrice(params map[string]string) (CaseTransform, error) {
	amountStr, ok := params["amount"]
	if !ok {
		return nil, fmt.Errorf("set_price requires 'amount' parameter")
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}
	return &SetPurchasePrice{Amount: amount}, nil
}

func createSetKind(params map[string]string) (CaseTransform, error) {
	kindStr, ok := params["kind"]
	if !ok {
		return nil, fmt.Errorf("set_kind requires 'kind' parameter")
	}
	return &SetKind{Kind: domain.RefundKind(strings.ReplaceAll(kindStr, "-", "_"))}, nil
}
