package cart_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/niksmo/qkart/internal/core/cart"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, cost int64) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "name-" + id,
		Category: "Fashion",
		Cost:     decimal.NewFromInt(cost),
		Rating:   4,
		Image:    "https://img.example/" + id + ".png",
	}
}

func TestJoin(t *testing.T) {
	catalog := []domain.Product{product("A", 100), product("B", 50)}

	t.Run("EmptyRecords", func(t *testing.T) {
		assert.Empty(t, cart.Join(nil, catalog))
		assert.Empty(t, cart.Join([]domain.CartRecord{}, catalog))
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		records := []domain.CartRecord{{ProductID: "A", Quantity: 1}}
		assert.Empty(t, cart.Join(records, nil))
	})

	t.Run("SingleMatch", func(t *testing.T) {
		records := []domain.CartRecord{{ProductID: "B", Quantity: 3}}

		items := cart.Join(records, catalog)

		want := []domain.CartItem{{Product: product("B", 50), Quantity: 3}}
		if diff := cmp.Diff(want, items); diff != "" {
			t.Errorf("Join() mismatch (-want +got):\n%s", diff)
		}
		assert.True(t, decimal.NewFromInt(150).Equal(cart.TotalValue(items)))
		assert.Equal(t, 3, cart.TotalCount(items))
	})

	t.Run("UnknownProductDropped", func(t *testing.T) {
		records := []domain.CartRecord{
			{ProductID: "missing", Quantity: 7},
			{ProductID: "A", Quantity: 1},
		}

		items := cart.Join(records, catalog)

		require.Len(t, items, 1)
		assert.Equal(t, "A", items[0].ID)
	})

	t.Run("CatalogOrder", func(t *testing.T) {
		records := []domain.CartRecord{
			{ProductID: "B", Quantity: 2},
			{ProductID: "A", Quantity: 5},
		}

		items := cart.Join(records, catalog)

		require.Len(t, items, 2)
		assert.Equal(t, "A", items[0].ID)
		assert.Equal(t, "B", items[1].ID)
	})

	t.Run("FirstRecordWins", func(t *testing.T) {
		records := []domain.CartRecord{
			{ProductID: "A", Quantity: 2},
			{ProductID: "A", Quantity: 9},
		}

		items := cart.Join(records, catalog)

		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("InputsUntouched", func(t *testing.T) {
		src := []domain.Product{product("A", 100), product("B", 50)}
		before := append([]domain.Product(nil), src...)
		records := []domain.CartRecord{{ProductID: "A", Quantity: 4}}

		items := cart.Join(records, src)
		items[0].Quantity = 99
		items[0].Name = "changed"

		if diff := cmp.Diff(before, src); diff != "" {
			t.Errorf("catalog was modified (-before +after):\n%s", diff)
		}
		again := cart.Join(records, src)
		assert.Equal(t, 4, again[0].Quantity)
	})
}

func TestJoinProperties(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))

	for round := range 50 {
		t.Run(fmt.Sprint(round), func(t *testing.T) {
			catalog := make([]domain.Product, rnd.IntN(10))
			for i := range catalog {
				catalog[i] = product(fmt.Sprint("p", i), rnd.Int64N(1000))
			}

			records := make([]domain.CartRecord, rnd.IntN(10))
			for i := range records {
				records[i] = domain.CartRecord{
					ProductID: fmt.Sprint("p", rnd.IntN(15)),
					Quantity:  rnd.IntN(5),
				}
			}

			items := cart.Join(records, catalog)

			matching := 0
			for _, r := range records {
				for _, p := range catalog {
					if p.ID == r.ProductID {
						matching++
						break
					}
				}
			}
			assert.LessOrEqual(t, len(items), matching)

			for _, it := range items {
				var inCatalog bool
				for _, p := range catalog {
					if p.ID == it.ID {
						inCatalog = true
					}
				}
				assert.True(t, inCatalog, "item %q not in catalog", it.ID)

				for _, r := range records {
					if r.ProductID == it.ID {
						assert.Equal(t, r.Quantity, it.Quantity)
						break
					}
				}
			}
		})
	}
}

func TestTotals(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.True(t, cart.TotalValue(nil).IsZero())
		assert.Equal(t, 0, cart.TotalCount(nil))
		assert.True(t, cart.TotalValue([]domain.CartItem{}).IsZero())
	})

	t.Run("SingleLine", func(t *testing.T) {
		items := []domain.CartItem{{Product: product("A", 100), Quantity: 2}}
		assert.True(t, decimal.NewFromInt(200).Equal(cart.TotalValue(items)))
		assert.Equal(t, 2, cart.TotalCount(items))
	})

	t.Run("FractionalCost", func(t *testing.T) {
		p := product("A", 0)
		p.Cost = decimal.RequireFromString("0.1")
		items := []domain.CartItem{{Product: p, Quantity: 3}}
		assert.Equal(t, "0.3", cart.TotalValue(items).String())
	})
}

func TestSummarize(t *testing.T) {
	items := []domain.CartItem{
		{Product: product("A", 100), Quantity: 2},
		{Product: product("B", 50), Quantity: 1},
	}

	s := cart.Summarize(items, cart.Shipping())

	assert.Equal(t, 3, s.Items)
	assert.True(t, decimal.NewFromInt(250).Equal(s.Subtotal))
	assert.True(t, s.Shipping.IsZero())
	assert.True(t, s.Subtotal.Add(s.Shipping).Equal(s.Total))

	one := cart.Summarize(items[:1], cart.Shipping())
	assert.True(t, decimal.NewFromInt(200).Equal(one.Total))
}

func TestShipping(t *testing.T) {
	s := cart.Shipping()
	_ = s.Add(decimal.NewFromInt(5))

	assert.True(t, cart.Shipping().IsZero())
}

func TestFind(t *testing.T) {
	items := []domain.CartItem{{Product: product("A", 1), Quantity: 1}}

	it, ok := cart.Find(items, "A")
	require.True(t, ok)
	assert.Equal(t, 1, it.Quantity)

	assert.False(t, cart.Contains(items, "B"))
}
