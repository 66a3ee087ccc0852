package model

// DownloadQuerier provides read-only queries over crate download data.
// An empty version selects all versions of the crate.
type DownloadQuerier interface {
	DownloadTimeseries(name, version string) ([]DownloadPoint, error)
	CratesPerCategory() ([]CategoryCount, error)
	TotalCrateCount() (int64, error)
}
