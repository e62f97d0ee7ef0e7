package response

import (
	"github.com/coastalprograms/swms-engine/internal/usecase/commands"
)

type SchedulerRunResponse struct {
	CampaignsProcessed int      `json:"campaignsProcessed"`
	CampaignsExecuted  int      `json:"campaignsExecuted"`
	CampaignsFailed    int      `json:"campaignsFailed"`
	Errors             []string `json:"errors"`
}

func FromRunResult(r *commands.RunResult) *SchedulerRunResponse {
	return &SchedulerRunResponse{
		CampaignsProcessed: r.CampaignsProcessed,
		CampaignsExecuted:  r.CampaignsExecuted,
		CampaignsFailed:    r.CampaignsFailed,
		Errors:             r.Errors,
	}
}
