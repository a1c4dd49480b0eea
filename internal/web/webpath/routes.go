package webpath

const (
	Home    = "/"
	Metrics = "/metrics"

	Api            = "/api"
	ApiScopes      = Api + "/scopes"
	ApiScope       = ApiScopes + "/:scope"
	ApiRatings     = ApiScope + "/ratings"
	ApiHistory     = ApiScope + "/players/:player/history"
	ApiSeries      = ApiScope + "/series/:metric"
	ApiAudit       = ApiScope + "/audit"
	ApiRebuild     = ApiScope + "/rebuild"
	ApiRebuildRuns = ApiScope + "/state"
)

func Path() map[string]string {
	return map[string]string{
		"Home":    Home,
		"Metrics": Metrics,
		"Scopes":  ApiScopes,
		"Ratings": ApiRatings,
		"History": ApiHistory,
		"Series":  ApiSeries,
		"Audit":   ApiAudit,
		"Rebuild": ApiRebuild,
		"State":   ApiRebuildRuns,
	}
}
