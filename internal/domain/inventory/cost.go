package inventory

import "github.com/shopspring/decimal"

// PurchaseTotal calcula el costo total de un registro de compra (cantidad * costo unitario).
// Un costo unitario negativo se trata como cero.
func PurchaseTotal(quantity int64, unitCost decimal.Decimal) decimal.Decimal {
	if quantity <= 0 || unitCost.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return unitCost.Mul(decimal.NewFromInt(quantity))
}

// AdjustedTotal recalcula el costo total tras corregir la cantidad de un registro.
func AdjustedTotal(previousQty, newQty int64, previousTotal decimal.Decimal) decimal.Decimal {
	if previousQty <= 0 {
		return decimal.Zero
	}
	unit := previousTotal.Div(decimal.NewFromInt(previousQty))
	return PurchaseTotal(newQty, unit)
}
