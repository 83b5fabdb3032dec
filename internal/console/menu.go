// Package console is the interactive text menu of the demo binary.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/service"
	"ecoride-backend/internal/utils"
)

// errQuit ends the menu loop when the input runs out mid-dialog.
var errQuit = errors.New("input closed")

type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	catalog service.CatalogService
	booking service.BookingService
}

func New(in io.Reader, out io.Writer, catalog service.CatalogService, booking service.BookingService) *Console {
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		catalog: catalog,
		booking: booking,
	}
}

// Run shows the menu until the user picks 0 or the input ends.
func (c *Console) Run(ctx context.Context) error {
	c.printWelcome()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printMenu()
		choice, err := c.readLine()
		if err != nil {
			c.println("")
			return nil
		}

		switch choice {
		case "1":
			err = c.addCar(ctx)
		case "2":
			err = c.listCars(ctx)
		case "3":
			err = c.registerAndBook(ctx)
		case "4":
			err = c.cancelReservation(ctx)
		case "5":
			err = c.searchReservations(ctx)
		case "6":
			err = c.generateInvoice(ctx)
		case "7":
			err = c.updateReservation(ctx)
		case "8":
			err = c.listByStartDate(ctx)
		case "0":
			c.println("Goodbye.")
			return nil
		default:
			c.println("Invalid option.")
		}

		if errors.Is(err, errQuit) {
			c.println("")
			return nil
		}
		if err != nil {
			c.println("ERROR: " + err.Error())
		}
	}
}

func (c *Console) printWelcome() {
	c.println("======================================")
	c.println("   EcoRide Car Rental System (Demo)   ")
	c.println("======================================")
}

func (c *Console) printMenu() {
	c.println("")
	c.println("Menu:")
	c.println("1. Add Car to Inventory")
	c.println("2. List All Cars")
	c.println("3. Register Customer & Book Car")
	c.println("4. Cancel Reservation")
	c.println("5. Search Reservations by Name")
	c.println("6. Generate Invoice (by Reservation ID)")
	c.println("7. Update Reservation (within 2 days of booking)")
	c.println("8. List Reservations by Start Date")
	c.println("0. Exit")
	c.print("Select option: ")
}

func (c *Console) addCar(ctx context.Context) error {
	id, err := c.prompt("Enter Car ID: ")
	if err != nil {
		return err
	}
	model, err := c.prompt("Enter Model: ")
	if err != nil {
		return err
	}
	category, err := c.promptCategory("Select Category: 1-Compact Petrol, 2-Hybrid, 3-Electric, 4-Luxury SUV")
	if err != nil {
		return err
	}

	car, err := c.catalog.AddCar(ctx, id, model, category)
	if err != nil {
		return err
	}
	c.println("Car added: " + FormatCar(*car))
	return nil
}

func (c *Console) listCars(ctx context.Context) error {
	cars, err := c.catalog.ListAllCars(ctx)
	if err != nil {
		return err
	}
	c.println("")
	c.println("Inventory:")
	for _, car := range cars {
		c.println(FormatCar(car))
	}
	return nil
}

func (c *Console) registerAndBook(ctx context.Context) error {
	c.println("")
	c.println("--- Register Customer & Book ---")
	var customer domain.Customer
	var err error
	if customer.IDDocument, err = c.prompt("NIC/Passport: "); err != nil {
		return err
	}
	if customer.Name, err = c.prompt("Full name: "); err != nil {
		return err
	}
	if customer.ContactNumber, err = c.prompt("Contact number: "); err != nil {
		return err
	}
	if customer.Email, err = c.prompt("Email: "); err != nil {
		return err
	}

	category, err := c.promptCategory("Choose Category: 1-Compact Petrol, 2-Hybrid, 3-Electric, 4-Luxury SUV")
	if err != nil {
		return err
	}
	dateStr, err := c.prompt("Rental start date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	start, err := utils.ParseDay(dateStr)
	if err != nil {
		c.println("Invalid date format.")
		return nil
	}
	days, err := c.promptInt("Number of days: ")
	if err != nil {
		return err
	}
	km, err := c.promptInt("Expected total kilometers: ")
	if err != nil {
		return err
	}

	id, err := c.booking.CreateReservation(ctx, customer, category, start, days, km)
	if err != nil {
		c.println("Booking failed: " + err.Error())
		return nil
	}
	c.println("Reservation successful. Reservation ID: " + id)
	return nil
}

func (c *Console) cancelReservation(ctx context.Context) error {
	id, err := c.prompt("Enter Reservation ID to cancel: ")
	if err != nil {
		return err
	}
	if err := c.booking.CancelReservation(ctx, id); err != nil {
		c.println("Unable to cancel reservation: " + describe(err))
		return nil
	}
	c.println("Reservation cancelled.")
	return nil
}

func (c *Console) updateReservation(ctx context.Context) error {
	id, err := c.prompt("Enter Reservation ID to update: ")
	if err != nil {
		return err
	}
	days, err := c.promptInt("New number of days: ")
	if err != nil {
		return err
	}
	km, err := c.promptInt("New expected total km: ")
	if err != nil {
		return err
	}
	if err := c.booking.UpdateReservation(ctx, id, days, km); err != nil {
		c.println("Unable to update: " + describe(err))
		return nil
	}
	c.println("Reservation updated.")
	return nil
}

func (c *Console) searchReservations(ctx context.Context) error {
	name, err := c.prompt("Enter customer name to search: ")
	if err != nil {
		return err
	}
	results, err := c.booking.SearchByCustomerName(ctx, name)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		c.println("No reservations found for: " + name)
		return nil
	}
	c.println("Reservations:")
	for _, r := range results {
		c.println(FormatReservation(r))
	}
	return nil
}

func (c *Console) listByStartDate(ctx context.Context) error {
	dateStr, err := c.prompt("Start date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	date, err := utils.ParseDay(dateStr)
	if err != nil {
		c.println("Invalid date format.")
		return nil
	}
	results, err := c.booking.ListReservationsByStartDate(ctx, date)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		c.println("No reservations start on " + utils.FormatDate(date))
		return nil
	}
	c.println("Reservations:")
	for _, r := range results {
		c.println(FormatReservation(r))
	}
	return nil
}

func (c *Console) generateInvoice(ctx context.Context) error {
	id, err := c.prompt("Enter Reservation ID for invoice: ")
	if err != nil {
		return err
	}
	inv, err := c.booking.IssueInvoice(ctx, id)
	if errors.Is(err, domain.ErrReservationNotFound) {
		c.println("Reservation not found.")
		return nil
	}
	if err != nil {
		return err
	}
	c.println("")
	c.print(FormatInvoice(inv))
	return nil
}

// describe turns lifecycle errors into menu wording.
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrReservationNotFound):
		return "reservation not found"
	case errors.Is(err, domain.ErrWindowExpired):
		return "the 2-day change window has passed"
	case errors.Is(err, domain.ErrReservationNotActive):
		return "reservation is no longer active"
	default:
		return err.Error()
	}
}

func (c *Console) prompt(label string) (string, error) {
	c.print(label)
	return c.readLine()
}

func (c *Console) promptInt(label string) (int, error) {
	s, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return n, nil
}

func (c *Console) promptCategory(label string) (domain.Category, error) {
	c.println(label)
	s, err := c.readLine()
	if err != nil {
		return "", err
	}
	return domain.ParseCategory(s)
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
