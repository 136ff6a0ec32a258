package report

const (
	defaultSheet   = "Sheet1" // created by excelize.NewFile
	responsePoints = 512
)
