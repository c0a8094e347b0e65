// Package sql embeds the schema migrations and the SQL statements used by
// the import pipeline.
package sql

import "embed"

// Migrations holds the schema migration files, applied in filename order.
//
//go:embed migrations
var Migrations embed.FS

//go:embed queries/register_import_file.sql
var RegisterImportFile string

//go:embed queries/lookup_import_file.sql
var LookupImportFile string

//go:embed queries/update_import_status.sql
var UpdateImportStatus string

//go:embed queries/merge_episodes.sql
var MergeEpisodes string

//go:embed queries/delete_staging_batch.sql
var DeleteStagingBatch string

//go:embed queries/select_recalc_episodes.sql
var SelectRecalcEpisodes string

//go:embed queries/update_episode_payments.sql
var UpdateEpisodePayments string

//go:embed queries/select_payment_rows.sql
var SelectPaymentRows string

//go:embed queries/analyze_episodes.sql
var AnalyzeEpisodes string

//go:embed queries/analyze_staging.sql
var AnalyzeStaging string
