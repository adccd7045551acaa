package models

import (
	"regexp"

	"storefront-service/internal/domain/errs"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\d{10}$`)
)

func (c *Customer) Validate() error {
	if c.Name == "" {
		return errs.Validation("Customer name is required")
	}
	if len(c.Name) > 50 {
		return errs.Validation("Customer name cannot be longer than 50 characters")
	}
	if c.Email == "" {
		return errs.Validation("Email address is required")
	}
	if len(c.Email) > 100 {
		return errs.Validation("Email cannot be longer than 100 characters")
	}
	if !emailRe.MatchString(c.Email) {
		return errs.Validation("Please enter a valid email address")
	}
	if c.Phone == "" {
		return errs.Validation("Phone number is required")
	}
	if !phoneRe.MatchString(c.Phone) {
		return errs.Validation("Please enter a valid phone number")
	}
	if c.Address == "" {
		return errs.Validation("Address is required")
	}
	return nil
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return errs.Validation("Product name is required")
	}
	if len(p.Name) > 100 {
		return errs.Validation("Product name cannot be longer than 100 characters")
	}
	if p.Description == "" {
		return errs.Validation("Description is required")
	}
	if len(p.Description) > 500 {
		return errs.Validation("Description cannot be longer than 500 characters")
	}
	if p.Price <= 0 {
		return errs.Validation("Price must be greater than 0")
	}
	if p.Quantity < 0 {
		return errs.Validation("Quantity cannot be negative")
	}
	return nil
}

func (o *Order) Validate() error {
	if o.CustomerRowKey == "" {
		return errs.Validation("Customer ID is required")
	}
	if o.ProductRowKey == "" {
		return errs.Validation("Product ID is required")
	}
	if o.Quantity < 1 {
		return errs.Validation("Quantity must be at least 1")
	}
	return nil
}
