package models

import "strings"

// Ingredient represents one tracked item in the fridge inventory
type Ingredient struct {
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     Unit     `json:"unit"`
	Expiry   Date     `json:"expiry"`
	Category Category `json:"category"`
}

// Normalized returns a copy with the name trimmed of surrounding whitespace.
func (i Ingredient) Normalized() Ingredient {
	i.Name = strings.TrimSpace(i.Name)
	return i
}

// Unit represents the unit of measurement for an ingredient
type Unit string

const (
	// Weight units
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
	UnitPound    Unit = "lb"
	UnitOunce    Unit = "oz"

	// Volume units
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "L"

	// Count units
	UnitPiece   Unit = "个"
	UnitSlice   Unit = "片"
	UnitCup     Unit = "杯"
	UnitSpoon   Unit = "勺"
	UnitServing Unit = "份"
)

// Units lists every accepted unit in display order.
var Units = []Unit{
	UnitGram, UnitKilogram, UnitPound, UnitOunce,
	UnitMilliliter, UnitLiter,
	UnitPiece, UnitSlice, UnitCup, UnitSpoon, UnitServing,
}

// Valid reports whether the unit is a member of the closed enumeration.
func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// Category represents the category of an ingredient
type Category string

const (
	// Ingredient categories
	CategoryMeat      Category = "肉"
	CategoryVegetable Category = "菜"
	CategoryStaple    Category = "主食"
	CategoryFruit     Category = "水果"
	CategorySauce     Category = "酱料"
	CategoryBeverage  Category = "饮料"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryMeat, CategoryVegetable, CategoryStaple,
	CategoryFruit, CategorySauce, CategoryBeverage,
}

// Valid reports whether the category is a member of the closed enumeration.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
