package dbConverter

import (
	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/gfranco93/bolsa-monitor/internal/model/dbModel"
)

func ConvertQuote(dbQuote dbModel.Quote) model.Quote {
	return model.Quote{
		Symbol:           dbQuote.Symbol,
		Name:             dbQuote.Name,
		Category:         model.Category(dbQuote.Category),
		Price:            dbQuote.Price,
		DividendYield:    dbQuote.DividendYield,
		LastDividend:     dbQuote.LastDividend,
		PaymentFrequency: dbQuote.PaymentFrequency,
		Sector:           dbQuote.Sector,
		DayChange:        dbQuote.DayChange,
		UpdatedAt:        dbQuote.UpdatedAt,
	}
}

func ConvertQuoteToDb(quote model.Quote) dbModel.Quote {
	return dbModel.Quote{
		Symbol:           quote.Symbol,
		Name:             quote.Name,
		Category:         string(quote.Category),
		Price:            quote.Price,
		DividendYield:    quote.DividendYield,
		LastDividend:     quote.LastDividend,
		PaymentFrequency: quote.PaymentFrequency,
		Sector:           quote.Sector,
		DayChange:        quote.DayChange,
		UpdatedAt:        quote.UpdatedAt,
	}
}
