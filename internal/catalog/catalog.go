package catalog

import (
	"context"
	"regexp"
	"strings"

	"github.com/and161185/gas2door/internal/model"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// StandardSizes are offered when the backend has no active cylinders.
var StandardSizes = []decimal.Decimal{
	decimal.NewFromInt(6),
	decimal.RequireFromString("12.5"),
	decimal.NewFromInt(25),
	decimal.NewFromInt(50),
}

var weightInName = regexp.MustCompile(`(?i)(\d+(\.\d+)?)\s*kg`)

var preferredSize = "12.5"

type Config struct {
	Fees        model.FeeConfig  `json:"fees"`
	Cylinders   []model.Cylinder `json:"cylinders"`
	Synthesized bool             `json:"synthesized"`

	// Degraded means the backend was not reached and Fees and Cylinders are
	// local defaults. Such a config is never used to place an order.
	Degraded bool `json:"degraded"`
}

func DefaultFees() model.FeeConfig {
	return model.FeeConfig{
		BaseDeliveryFee:  100000,
		ExpressSurcharge: 50000,
		GasPricePerKg:    110000,
		VATRate:          decimal.RequireFromString("0.075"),
		ServiceFeeRate:   decimal.Zero,
	}
}

// Build interprets a /config document. A nil or malformed document yields the
// defaults and the standard catalog.
func Build(raw []byte, defaults model.FeeConfig) Config {
	root := gjson.ParseBytes(raw)

	fees := root.Get("feeSettings")
	if !fees.IsObject() {
		fees = root
	}

	cfg := Config{Fees: parseFees(fees, defaults)}

	for _, c := range root.Get("cylinderSettings").Array() {
		if active := c.Get("isActive"); active.Exists() && !active.Bool() {
			continue
		}
		cfg.Cylinders = append(cfg.Cylinders, parseCylinder(c))
	}

	if len(cfg.Cylinders) == 0 {
		cfg.Cylinders = standardCatalog(cfg.Fees.GasPricePerKg)
		cfg.Synthesized = true
	}
	return cfg
}

func parseFees(fees gjson.Result, defaults model.FeeConfig) model.FeeConfig {
	out := defaults

	if v := positiveAmount(fees.Get("baseDeliveryFee")); v > 0 {
		out.BaseDeliveryFee = v
	}
	if v := positiveAmount(fees.Get("expressDeliverySurcharge")); v > 0 {
		out.ExpressSurcharge = v
	}
	if v := positiveAmount(fees.Get("gasPricePerKg")); v > 0 {
		out.GasPricePerKg = v
	}
	if rate, ok := percentage(fees.Get("vatPercentage")); ok {
		out.VATRate = rate
	}
	if rate, ok := percentage(fees.Get("serviceFeePercentage")); ok {
		out.ServiceFeeRate = rate
	}
	return out
}

func positiveAmount(v gjson.Result) int64 {
	if !v.Exists() {
		return 0
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil || !d.IsPositive() {
		return 0
	}
	return d.Round(0).IntPart()
}

// percentage converts 7.5 into 0.075. Zero is a valid rate, negatives are not.
func percentage(v gjson.Result) (decimal.Decimal, bool) {
	if !v.Exists() || v.Type == gjson.Null {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d.Div(decimal.NewFromInt(100)), true
}

func parseCylinder(c gjson.Result) model.Cylinder {
	name := c.Get("name").String()

	id := c.Get("id").String()
	if id == "" {
		id = c.Get("_id").String()
	}

	return model.Cylinder{
		ID:        id,
		Name:      name,
		WeightKg:  weight(c.Get("weightKg"), name),
		UnitPrice: positiveAmount(c.Get("price")),
	}
}

// weight prefers the explicit field, then a "<n>kg" in the name, then 1.
func weight(field gjson.Result, name string) decimal.Decimal {
	if field.Exists() {
		if d, err := decimal.NewFromString(field.String()); err == nil && d.IsPositive() {
			return d
		}
	}
	if m := weightInName.FindStringSubmatch(name); m != nil {
		if d, err := decimal.NewFromString(m[1]); err == nil && d.IsPositive() {
			return d
		}
	}
	return decimal.NewFromInt(1)
}

func standardCatalog(pricePerKg int64) []model.Cylinder {
	out := make([]model.Cylinder, 0, len(StandardSizes))
	for _, kg := range StandardSizes {
		out = append(out, model.Cylinder{
			ID:        "c-" + kg.String(),
			Name:      kg.String() + "kg Cylinder",
			WeightKg:  kg,
			UnitPrice: kg.Mul(decimal.NewFromInt(pricePerKg)).Round(0).IntPart(),
		})
	}
	return out
}

// Default is the 12.5kg entry when there is one, else the first entry.
func (c Config) Default() *model.Cylinder {
	for i := range c.Cylinders {
		if strings.Contains(c.Cylinders[i].Name, preferredSize) {
			return &c.Cylinders[i]
		}
	}
	if len(c.Cylinders) > 0 {
		return &c.Cylinders[0]
	}
	return nil
}

func (c Config) Find(id string) (*model.Cylinder, bool) {
	for i := range c.Cylinders {
		if c.Cylinders[i].ID == id {
			return &c.Cylinders[i], true
		}
	}
	return nil, false
}

type Source interface {
	GetConfig(ctx context.Context) ([]byte, error)
}

// Loader fetches the configuration on demand. Concurrent loads share one
// backend request that outlives any single caller.
type Loader struct {
	source   Source
	defaults model.FeeConfig
	group    singleflight.Group
	logger   *zap.SugaredLogger
}

func NewLoader(source Source, defaults model.FeeConfig, logger *zap.SugaredLogger) *Loader {
	return &Loader{source: source, defaults: defaults, logger: logger}
}

// Load never fails: when the backend cannot be reached, or the caller gives
// up first, the result is the defaults marked Degraded.
func (l *Loader) Load(ctx context.Context) Config {
	ch := l.group.DoChan("config", func() (interface{}, error) {
		// bounded by the backend client's timeout
		raw, err := l.source.GetConfig(context.WithoutCancel(ctx))
		if err != nil {
			l.logger.Warnf("load config, using defaults: %v", err)
			return l.degraded(), nil
		}
		return Build(raw, l.defaults), nil
	})

	select {
	case res := <-ch:
		return res.Val.(Config)
	case <-ctx.Done():
		return l.degraded()
	}
}

func (l *Loader) degraded() Config {
	cfg := Build(nil, l.defaults)
	cfg.Degraded = true
	return cfg
}
