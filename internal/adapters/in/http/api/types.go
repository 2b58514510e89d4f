package api

import (
	"time"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PackagingEntry defines model for PackagingEntry.
type PackagingEntry struct {
	ID       string `json:"id"`
	Deposit  string `json:"deposit"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// Dispatch defines model for Dispatch.
type Dispatch struct {
	Category string `json:"category"`
	Value    string `json:"value"`
	Label    string `json:"label"`
}

// Order defines model for Order.
type Order struct {
	ID             string           `json:"id"`
	OrderNumber    string           `json:"order_number"`
	OrderNumbers   []string         `json:"order_numbers,omitempty"`
	CustomerNumber string           `json:"customer_number,omitempty"`
	CustomerName   string           `json:"customer_name"`
	Locality       string           `json:"locality"`
	Status         string           `json:"status"`
	StatusLabel    string           `json:"status_label"`
	Packaging      []PackagingEntry `json:"packaging"`
	PackagingTotal int              `json:"packaging_total"`
	Dispatch       *Dispatch        `json:"dispatch,omitempty"`
	Reviewers      []string         `json:"reviewers"`
	Notes          string           `json:"notes,omitempty"`
	Source         string           `json:"source"`
	CreatedAt      time.Time        `json:"created_at"`
	Version        int              `json:"version"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	OrderNumber    string `json:"order_number" validate:"required"`
	CustomerNumber string `json:"customer_number"`
	CustomerName   string `json:"customer_name" validate:"required"`
	Locality       string `json:"locality"`
	Notes          string `json:"notes"`
	Source         string `json:"source" validate:"omitempty,oneof=AI Manual"`
}

// OrderPatch leaves absent fields untouched.
type OrderPatch struct {
	CustomerNumber *string `json:"customer_number,omitempty"`
	CustomerName   *string `json:"customer_name,omitempty"`
	Locality       *string `json:"locality,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Status         *string `json:"status,omitempty"`
}

// Choice defines model for Choice.
type Choice struct {
	Label string `json:"label" validate:"required"`
	Other bool   `json:"other"`
}

// NewPackagingEntry defines model for NewPackagingEntry.
type NewPackagingEntry struct {
	Deposit  Choice `json:"deposit"`
	Type     Choice `json:"type"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// DispatchSelection defines model for DispatchSelection.
type DispatchSelection struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

// Collaborator defines model for Collaborator.
type Collaborator struct {
	Name string `json:"name" validate:"required"`
}

// OrderNumberLink defines model for OrderNumberLink.
type OrderNumberLink struct {
	Number string `json:"number" validate:"required"`
}

// NotificationRequest defines model for NotificationRequest.
type NotificationRequest struct {
	Phone string `json:"phone"`
}

// Notification defines model for Notification.
type Notification struct {
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

// DispatchOptions defines model for DispatchOptions.
type DispatchOptions struct {
	Category   string   `json:"category"`
	UsesRoster bool     `json:"uses_roster"`
	Options    []string `json:"options"`
}

// StatusCount defines model for StatusCount.
type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

// ExtractionRequest carries either text or base64 media with its mime type.
type ExtractionRequest struct {
	Text     string `json:"text" validate:"required_without=Data"`
	Data     string `json:"data" validate:"omitempty,base64"`
	MimeType string `json:"mime_type" validate:"required_with=Data"`
}

// Extraction defines model for Extraction.
type Extraction struct {
	CustomerName string `json:"customer_name"`
	Locality     string `json:"locality"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	View *string `form:"view,omitempty" json:"view,omitempty"`
	Q    *string `form:"q,omitempty" json:"q,omitempty"`
}

// OperatorParams carries the acting operator for operations that only take the header.
type OperatorParams struct {
	XOperator *string `json:"X-Operator,omitempty"`
}

// DeleteOrderParams defines parameters for DeleteOrder.
type DeleteOrderParams struct {
	Confirm   *bool   `form:"confirm,omitempty" json:"confirm,omitempty"`
	XOperator *string `json:"X-Operator,omitempty"`
}

// PreviewNotificationParams defines parameters for PreviewNotification.
type PreviewNotificationParams struct {
	Category  *string `form:"category,omitempty" json:"category,omitempty"`
	Value     *string `form:"value,omitempty" json:"value,omitempty"`
	XOperator *string `json:"X-Operator,omitempty"`
}

// GetDispatchOptionsParams defines parameters for GetDispatchOptions.
type GetDispatchOptionsParams struct {
	Category *string `form:"category,omitempty" json:"category,omitempty"`
}
