package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int64               `json:"id"`
	ProductCode  string              `json:"product_code"`
	ModelNo      *string             `json:"model_no"`
	Brand        *string             `json:"brand"`
	ProductType  *string             `json:"product_type"`
	StorePrice   decimal.NullDecimal `json:"store_price"`
	OnlinePrice  decimal.NullDecimal `json:"online_price"`
	Specs        *string             `json:"specs"`
	MainImageURL *string             `json:"main_image_url"`
	Colors       []ProductColor      `json:"colors"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type ProductColor struct {
	ID             int64         `json:"id"`
	ProductID      int64         `json:"product_id"`
	ColorName      string        `json:"color_name"`
	ColorSwatchURL *string       `json:"color_swatch_url"`
	Sizes          []ProductSize `json:"sizes"`
}

type ProductSize struct {
	ID        int64  `json:"id"`
	ColorID   int64  `json:"color_id"`
	SizeLabel string `json:"size_label"`
	Quantity  int    `json:"quantity"`
}

// Inventory mapeia cor -> tamanho -> quantidade em estoque
type Inventory map[string]map[string]int

// PriceFor retorna o preço do produto no canal. Produtos com um único preço
// usam o mesmo valor nos dois canais.
func (p *Product) PriceFor(ctx Context) (decimal.Decimal, bool) {
	primary, fallback := p.StorePrice, p.OnlinePrice
	if ctx == ContextOnline {
		primary, fallback = p.OnlinePrice, p.StorePrice
	}

	if primary.Valid {
		return primary.Decimal, true
	}
	if fallback.Valid {
		return fallback.Decimal, true
	}

	return decimal.Zero, false
}

// QuantityOf retorna o estoque da variante; variante inexistente tem estoque zero
func (p *Product) QuantityOf(color, size string) int {
	for _, c := range p.Colors {
		if c.ColorName != color {
			continue
		}
		for _, s := range c.Sizes {
			if s.SizeLabel == size {
				return s.Quantity
			}
		}
	}
	return 0
}

func (p *Product) Inventory() Inventory {
	inv := make(Inventory, len(p.Colors))
	for _, c := range p.Colors {
		sizes := make(map[string]int, len(c.Sizes))
		for _, s := range c.Sizes {
			sizes[s.SizeLabel] = s.Quantity
		}
		inv[c.ColorName] = sizes
	}
	return inv
}

func (p *Product) TotalStock() int {
	total := 0
	for _, c := range p.Colors {
		for _, s := range c.Sizes {
			total += s.Quantity
		}
	}
	return total
}

// ProductView é o produto como exposto pela API, com o mapa de estoque e o
// preço do canal solicitado
type ProductView struct {
	*Product
	Price     *decimal.Decimal `json:"price,omitempty"`
	Inventory Inventory        `json:"inventory"`
}

func NewProductView(p *Product, ctx Context) ProductView {
	view := ProductView{Product: p, Inventory: p.Inventory()}
	if ctx.IsChannel() {
		if price, ok := p.PriceFor(ctx); ok {
			view.Price = &price
		}
	}
	return view
}

type ProductInput struct {
	ProductCode  string              `json:"product_code" validate:"required,max=50"`
	ModelNo      *string             `json:"model_no"`
	Brand        *string             `json:"brand"`
	ProductType  *string             `json:"product_type"`
	StorePrice   decimal.NullDecimal `json:"store_price"`
	OnlinePrice  decimal.NullDecimal `json:"online_price"`
	Specs        *string             `json:"specs"`
	MainImageURL *string             `json:"main_image_url"`
	Colors       []string            `json:"colors" validate:"dive,required"`
	Sizes        []string            `json:"sizes" validate:"dive,required"`
	Swatches     map[string]string   `json:"swatches"`
	Inventory    Inventory           `json:"inventory"`
}

type ProductFilter struct {
	Search string
	Limit  int
}

// Variants normaliza cores, tamanhos e o mapa de estoque nas linhas filhas do
// produto. Toda combinação cor x tamanho recebe uma linha; cores e tamanhos que
// aparecem só no mapa de estoque também entram.
func (in *ProductInput) Variants() []ProductColor {
	colors := appendUnique(nil, in.Colors...)
	sizes := appendUnique(nil, in.Sizes...)

	var extraColors, extraSizes []string
	for color, bySize := range in.Inventory {
		extraColors = append(extraColors, color)
		for size := range bySize {
			extraSizes = append(extraSizes, size)
		}
	}
	// mapas não têm ordem; as variantes extras entram ordenadas
	slices.Sort(extraColors)
	slices.Sort(extraSizes)
	colors = appendUnique(colors, extraColors...)
	sizes = appendUnique(sizes, extraSizes...)

	variants := make([]ProductColor, 0, len(colors))
	for _, color := range colors {
		pc := ProductColor{ColorName: color, Sizes: make([]ProductSize, 0, len(sizes))}
		if url, ok := in.Swatches[color]; ok && url != "" {
			swatch := url
			pc.ColorSwatchURL = &swatch
		}
		for _, size := range sizes {
			pc.Sizes = append(pc.Sizes, ProductSize{SizeLabel: size, Quantity: in.Inventory[color][size]})
		}
		variants = append(variants, pc)
	}
	return variants
}

// NegativeQuantities lista as variantes do mapa de estoque com quantidade negativa
func (in *ProductInput) NegativeQuantities() []string {
	var invalid []string
	for color, bySize := range in.Inventory {
		for size, qty := range bySize {
			if qty < 0 {
				invalid = append(invalid, color+"/"+size)
			}
		}
	}
	slices.Sort(invalid)
	return invalid
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		found := false
		for _, existing := range list {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}
