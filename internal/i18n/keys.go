// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess      = "success"
	KeyError        = "error"
	KeyAccessDenied = "access_denied"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthEmailExists        = "auth.email_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// User management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserDeleted        = "user.deleted"

	// Inventory
	KeyInventoryCreated  = "inventory.created"
	KeyInventoryUpdated  = "inventory.updated"
	KeyInventoryDeleted  = "inventory.deleted"
	KeyInventoryNotFound = "inventory.not_found"

	// Customers
	KeyCustomerCreated  = "customer.created"
	KeyCustomerUpdated  = "customer.updated"
	KeyCustomerDeleted  = "customer.deleted"
	KeyCustomerNotFound = "customer.not_found"

	// Sales
	KeySaleCompleted        = "sale.completed"
	KeySaleNotFound         = "sale.not_found"
	KeySaleEmptyCart        = "sale.empty_cart"
	KeySaleInsufficientQty  = "sale.insufficient_stock"
	KeySaleUnknownItem      = "sale.unknown_item"
	KeyCommunicationCreated = "communication.created"

	// Disease reports
	KeyReportCreated  = "report.created"
	KeyReportNotFound = "report.not_found"
	KeyReportUpdated  = "report.updated"

	// Weather
	KeyWeatherUnavailable = "weather.unavailable"

	// Notifications
	KeyNotificationRead     = "notification.read"
	KeyNotificationNotFound = "notification.not_found"

	// Uploads
	KeyFileUploadFailed = "upload.failed"
	KeyFileTypeInvalid  = "upload.invalid_type"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
)
