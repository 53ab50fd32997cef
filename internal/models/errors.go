package models

import (
	"errors"
)

var (
	ErrGeneral           = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound  = errors.New("there is no")
	ErrReferenceNotFound = errors.New("a resource referenced in the request does not exist")
)

// Validation errors for individual resources.
var (
	ErrCompanyCodeNotUnique    = errors.New("the company code is already in use")
	ErrProjectDatesInverted    = errors.New("the project must not end before it starts")
	ErrProjectRevenueNegative  = errors.New("the total revenue of a project must not be negative")
	ErrProjectHoursNegative    = errors.New("the total hours of a project must not be negative")
	ErrAmountNegative          = errors.New("amounts must not be negative")
	ErrRateNegative            = errors.New("rates and capacities must not be negative")
	ErrMonthOutOfRange         = errors.New("the month must be between 1 and 12")
	ErrAllocationNotUnique     = errors.New("you can not create multiple allocations for the same member, month and week")
	ErrMonthlyRevenueNotUnique = errors.New("you can not create multiple revenue entries for the same company, project, month and type")
	ErrCostDatesInverted       = errors.New("the cost must not end before it starts")
	ErrEmploymentDatesInverted = errors.New("the employment must not end before it starts")
)
