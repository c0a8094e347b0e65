package model

// PaymentRow mirrors the Parquet schema for one exported payment report line.
// Money fields are float64 in the export to keep downstream spreadsheet and
// notebook tooling simple; cents are converted on the way out.
type PaymentRow struct {
	EpisodeCode    string   `parquet:"episode_code"`
	ConventionCode string   `parquet:"convention_code"`
	GRDCode        string   `parquet:"grd_code"`
	GRDWeight      *float64 `parquet:"grd_weight,optional"`

	BasePriceTier *float64 `parquet:"base_price_tier,optional"`

	LengthOfStayDays *int32 `parquet:"length_of_stay_days,optional"`
	DelayDays        *int32 `parquet:"delay_days,optional"`

	AdmissionDate *string `parquet:"admission_date,optional"`
	DischargeDate *string `parquet:"discharge_date,optional"`

	InlierOutlier *string `parquet:"inlier_outlier,optional"`

	DelayRescuePayment     *float64 `parquet:"delay_rescue_payment,optional"`
	SuperiorOutlierPayment *float64 `parquet:"superior_outlier_payment,optional"`
	CalcDegraded           bool     `parquet:"calc_degraded"`
}
