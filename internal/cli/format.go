package cli

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func formatInt(n int) string {
	return printer.Sprintf("%d", n)
}

func formatKg(kg float64) string {
	return printer.Sprintf("%.2f kg", kg)
}
