// Package products holds the static per-product configuration for the
// Vietlott games the crawler knows about.
package products

import "fmt"

// Shape selects which of the two result layouts a product's draw
// pages use.
type Shape string

const (
	// a flat row of whole numbers, e.g. Power 6/55
	ShapeNumeric Shape = "numeric"
	// repeated groups of three single digits, e.g. Max 3D
	ShapeTriplet Shape = "triplet"
)

type Config struct {
	Name string
	// inclusive bounds of the number domain
	MinValue int
	MaxValue int
	// numbers per draw for numeric products; for triplet products
	// this is the nominal total across prize tiers, not all tiers
	// always populate
	PickCount int
	DataFile  string
	URL       string
	SMSCode   string
	Shape     Shape
}

var ErrUnknownProduct = fmt.Errorf("unknown product")

var registry = map[string]Config{
	"655": {
		Name:      "power_655",
		MinValue:  1,
		MaxValue:  55,
		PickCount: 6,
		DataFile:  "data/power655.jsonl",
		URL:       "https://vietlott.vn/ajaxpro/Vietlott.PlugIn.WebParts.Game655ResultDetailWebPart,Vietlott.PlugIn.WebParts.ashx",
		SMSCode:   "655",
		Shape:     ShapeNumeric,
	},
	"645": {
		Name:      "power_645",
		MinValue:  1,
		MaxValue:  45,
		PickCount: 6,
		DataFile:  "data/power645.jsonl",
		URL:       "https://vietlott.vn/ajaxpro/Vietlott.PlugIn.WebParts.Game645ResultDetailWebPart,Vietlott.PlugIn.WebParts.ashx",
		SMSCode:   "645",
		Shape:     ShapeNumeric,
	},
	"3d": {
		Name:      "max_3d",
		MinValue:  0,
		MaxValue:  999,
		PickCount: 20,
		DataFile:  "data/max3d.jsonl",
		URL:       "https://vietlott.vn/ajaxpro/Vietlott.PlugIn.WebParts.GameMax3DResultDetailWebPart,Vietlott.PlugIn.WebParts.ashx",
		SMSCode:   "3D",
		Shape:     ShapeTriplet,
	},
	"3dpro": {
		Name:      "max_3d_pro",
		MinValue:  0,
		MaxValue:  999,
		PickCount: 20,
		DataFile:  "data/max3d_pro.jsonl",
		URL:       "https://vietlott.vn/ajaxpro/Vietlott.PlugIn.WebParts.GameMax3DProResultDetailWebPart,Vietlott.PlugIn.WebParts.ashx",
		SMSCode:   "3DPRO",
		Shape:     ShapeTriplet,
	},
	"535": {
		Name:      "lotto_535",
		MinValue:  1,
		MaxValue:  35,
		PickCount: 5,
		DataFile:  "data/lotto535.jsonl",
		URL:       "https://vietlott.vn/ajaxpro/Vietlott.PlugIn.WebParts.Game535ResultDetailWebPart,Vietlott.PlugIn.WebParts.ashx",
		SMSCode:   "535",
		Shape:     ShapeNumeric,
	},
	"keno": {
		Name:      "keno",
		MinValue:  1,
		MaxValue:  80,
		PickCount: 20,
		DataFile:  "data/keno.jsonl",
		URL:       "https://vietlott.vn/ajaxpro/Vietlott.PlugIn.WebParts.GameKenoResultDetailWebPart,Vietlott.PlugIn.WebParts.ashx",
		SMSCode:   "KENO",
		Shape:     ShapeNumeric,
	},
}

func Get(key string) (Config, error) {
	cfg, ok := registry[key]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownProduct, key)
	}
	return cfg, nil
}

// the set the nightly driver walks, keno draws too frequently
// to backfill over this endpoint
var DefaultUpdateOrder = []string{"655", "645", "3d", "3dpro", "535"}
