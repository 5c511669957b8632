package service

const (
	AlertSaveRejected = "Please add a title and calculate results first"
	AlertSaved        = "Scenario saved!"

	DefaultExportFilename = "proforma"
)
