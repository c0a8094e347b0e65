package exitcode

const (
	Success        = 0
	UsageError     = 1
	PrecheckError  = 2
	DBConnError    = 3
	CopyError      = 4
	CalcError      = 5
	PartialSuccess = 6
)
