package console

import (
	"fmt"
	"strings"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/utils"
)

const (
	invoiceBanner = "========== EcoRide Invoice =========="
	invoiceRule   = "--------------------------------------"
	invoiceFooter = "======================================"
)

// FormatCar renders one catalog line.
func FormatCar(c domain.Car) string {
	return fmt.Sprintf("%s | %s | %s | LKR %s | %s",
		c.ID, c.Model, c.Category, c.DailyRate.StringFixed(2), c.Availability)
}

// FormatReservation renders one ledger line.
func FormatReservation(r domain.Reservation) string {
	return fmt.Sprintf("ResID:%s | Cust:%s | Car:%s | Start:%s | Days:%d | Km:%d | Status:%s",
		r.ID, r.Customer.Name, r.CarID, utils.FormatDate(r.RentalStartDate), r.NumDays, r.ExpectedTotalKm, r.Status)
}

// FormatInvoice renders the printable invoice with two-decimal amounts.
func FormatInvoice(inv *domain.Invoice) string {
	b := inv.Breakdown
	cur := b.Currency
	if cur == "" {
		cur = "LKR"
	}

	var sb strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format+"\n", args...)
	}

	line(invoiceBanner)
	line("Invoice ID: %s", inv.ID)
	line("Issue Date: %s", utils.FormatDate(inv.IssueDate))
	line("")
	line("Car: %s - %s", inv.Car.ID, inv.Car.Model)
	line("Category: %s", inv.Car.Category)
	line("Daily Rate: %s %s", cur, b.DailyRate.StringFixed(2))
	line("")
	line("Customer: %s", inv.Customer.Name)
	line("Rental Start: %s", utils.FormatDate(inv.RentalStartDate))
	line("Number of Days: %d", inv.NumDays)
	line("Expected Km Used: %d", inv.ExpectedTotalKm)
	line("")
	line("Base Price: %s %s", cur, b.BasePrice.StringFixed(2))
	line("Extra Km Charge: %s %s", cur, b.ExtraKmCharge.StringFixed(2))
	line("Discount: -%s %s", cur, b.Discount.StringFixed(2))
	line("Tax: %s %s", cur, b.Tax.StringFixed(2))
	line("Deposit (handled): -%s %s", cur, b.Deposit.StringFixed(2))
	line(invoiceRule)
	line("Final Payable: %s %s", cur, b.Payable.StringFixed(2))
	line(invoiceFooter)
	return sb.String()
}
