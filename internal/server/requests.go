package server

// ExportOrdersRequest is the JSON body of the CSV export function.
// Dates are optional inclusive ISO-8601 day bounds on the order date.
type ExportOrdersRequest struct {
	CustomerID string `json:"customerId" validate:"required"`
	StartDate  string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// SendConfirmationRequest is the JSON body of the confirmation function.
type SendConfirmationRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}
