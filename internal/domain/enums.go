package domain

type LineItemType string

const (
	LineItemMaterial      LineItemType = "material"
	LineItemLabor         LineItemType = "labor"
	LineItemEquipment     LineItemType = "equipment"
	LineItemSubcontractor LineItemType = "subcontractor"
	LineItemPermit        LineItemType = "permit"
)

// ValidLineItemTypes is the canonical set of accepted line item type strings.
var ValidLineItemTypes = map[string]bool{
	"material": true, "labor": true, "equipment": true,
	"subcontractor": true, "permit": true,
}

type EstimateStatus string

const (
	EstimateDraft    EstimateStatus = "draft"
	EstimateSent     EstimateStatus = "sent"
	EstimateViewed   EstimateStatus = "viewed"
	EstimateAccepted EstimateStatus = "accepted"
	EstimateDeclined EstimateStatus = "declined"

	// EstimateExpired is derived from ValidUntil on read and never stored.
	EstimateExpired EstimateStatus = "expired"
)

type WorkOrderStatus string

const (
	WorkOrderDraft      WorkOrderStatus = "draft"
	WorkOrderScheduled  WorkOrderStatus = "scheduled"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderOnHold     WorkOrderStatus = "on_hold"
	WorkOrderCompleted  WorkOrderStatus = "completed"
	WorkOrderCancelled  WorkOrderStatus = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "normal": true, "high": true, "urgent": true,
}

// InvoiceStatus covers both stored statuses (draft, sent, viewed, cancelled)
// and derived ones (partial, paid, overdue). Only stored statuses are ever
// persisted; the rest come out of Invoice.EffectiveStatus.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoiceViewed    InvoiceStatus = "viewed"
	InvoiceCancelled InvoiceStatus = "cancelled"

	InvoicePartial InvoiceStatus = "partial"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// DerivedInvoiceStatuses are never persisted; filtering on one must compare
// against EffectiveStatus rather than the stored column.
var DerivedInvoiceStatuses = map[InvoiceStatus]bool{
	InvoicePartial: true, InvoicePaid: true, InvoiceOverdue: true,
}

// Document number prefixes, one per document type.
const (
	PrefixEstimate  = "EST"
	PrefixWorkOrder = "WO"
	PrefixInvoice   = "INV"
)
