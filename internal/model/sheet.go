package model

// Column names of the CMBD episode sheet, exactly as exported by the coding
// department. Matching is literal: accents, brackets and casing included.
const (
	ColEpisode          = "Episodio CMBD"
	ColConvention       = "Convenio"
	ColGRD              = "IR-GRD"
	ColGRDWeight        = "Peso Medio [Norma IR]"
	ColBasePriceTier    = "Precio Base Tramo"
	ColAdmissionDate    = "Fecha Ingreso"
	ColDischargeDate    = "Fecha Egreso"
	ColLengthOfStay     = "Dias Estada"
	ColDelayDays        = "Dias Demora"
	ColInlierOutlier    = "Inlier/Outlier"
	ColDischargeService = "Servicio Egreso"
	ColAT               = "AT"
	ColManualDelay      = "Rescate Demora"
	ColOutlierPayment   = "Monto Outlier Superior"
)

// RequiredHeaders lists every column an upload must carry. A sheet missing
// any of these is rejected before row-level checks run.
var RequiredHeaders = []string{
	ColEpisode,
	ColConvention,
	ColGRD,
	ColGRDWeight,
	ColBasePriceTier,
	ColAdmissionDate,
	ColDischargeDate,
	ColLengthOfStay,
	ColDelayDays,
	ColInlierOutlier,
	ColDischargeService,
	ColAT,
	ColManualDelay,
	ColOutlierPayment,
}

// KeyColumn is the unique episode identifier; duplicate values across rows
// are flagged during precheck.
const KeyColumn = ColEpisode

// RequiredFields lists the columns that must be non-empty on every row.
var RequiredFields = []string{
	ColEpisode,
	ColConvention,
	ColGRD,
	ColGRDWeight,
	ColBasePriceTier,
	ColAdmissionDate,
	ColLengthOfStay,
}

// NumericColumns lists the columns whose values must parse as finite numbers
// under the locale-tolerant parser.
var NumericColumns = []string{
	ColLengthOfStay,
	ColGRDWeight,
	ColBasePriceTier,
}
