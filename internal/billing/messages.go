package billing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	msgBillingAddress       = "Billing address"
	msgUseShippingAsBilling = "Use shipping address as billing address"
)

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	translations := map[language.Tag][2]string{
		language.English: {msgBillingAddress, msgUseShippingAsBilling},
		language.Polish:  {"Adres rozliczeniowy", "Użyj adresu dostawy jako adresu rozliczeniowego"},
		language.German:  {"Rechnungsadresse", "Lieferadresse als Rechnungsadresse verwenden"},
		language.French:  {"Adresse de facturation", "Utiliser l'adresse de livraison comme adresse de facturation"},
	}

	for tag, texts := range translations {
		_ = b.SetString(tag, msgBillingAddress, texts[0])
		_ = b.SetString(tag, msgUseShippingAsBilling, texts[1])
	}
	return b
}

func newPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag, message.Catalog(messages))
}
