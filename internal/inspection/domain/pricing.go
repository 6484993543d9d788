package domain

import "github.com/shopspring/decimal"

// Credit pricing: the base consumption is one credit per 100 m²,
// increased by percentage surcharges and a flat relocation fee.
var (
	areaPerCredit = decimal.NewFromInt(100)

	propertyTypeSurcharge = map[PropertyType]decimal.Decimal{
		PropertyTypeApartment:  decimal.Zero,
		PropertyTypeHouse:      decimal.NewFromInt(20),
		PropertyTypeCommercial: decimal.NewFromInt(30),
	}

	furnishingSurcharge = map[Furnishing]decimal.Decimal{
		FurnishingUnfurnished:   decimal.Zero,
		FurnishingSemiFurnished: decimal.NewFromInt(15),
		FurnishingFurnished:     decimal.NewFromInt(30),
	}

	expressSurcharge = decimal.NewFromInt(40)

	relocationFee = decimal.RequireFromString("0.5")

	oneHundred = decimal.NewFromInt(100)
)

// CalculateConsumption computes the credits one inspection consumes
// from its area and surcharges. The result is frozen on the row and
// treated as ground truth by reconciliation from then on.
func CalculateConsumption(area decimal.Decimal, propertyType PropertyType, furnishing Furnishing, express, relocation bool) decimal.Decimal {
	if !area.IsPositive() {
		return decimal.Zero
	}

	surcharge := propertyTypeSurcharge[propertyType].Add(furnishingSurcharge[furnishing])
	if express {
		surcharge = surcharge.Add(expressSurcharge)
	}

	consumption := area.Div(areaPerCredit).
		Mul(oneHundred.Add(surcharge)).
		Div(oneHundred)

	if relocation {
		consumption = consumption.Add(relocationFee)
	}

	return consumption.Round(2)
}
