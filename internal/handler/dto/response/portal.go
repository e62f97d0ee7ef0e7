package response

import (
	"time"

	"github.com/coastalprograms/swms-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

// PortalResponse is the contractor-facing view: the job they must submit a
// SWMS for and when the link stops working. Internal ids for the send and
// campaign stay out of it.
type PortalResponse struct {
	JobID          uuid.UUID `json:"jobId"`
	JobName        string    `json:"jobName"`
	Requirements   string    `json:"requirements"`
	JobSiteName    string    `json:"jobSiteName"`
	JobSiteAddress string    `json:"jobSiteAddress"`
	DueDate        time.Time `json:"dueDate"`
	ContractorName string    `json:"contractorName"`
	CompanyName    string    `json:"companyName"`
	CampaignType   string    `json:"campaignType"`
	ExpiresAt      time.Time `json:"expiresAt"`
	Submitted      bool      `json:"submitted"`
}

func FromPortalResolution(res *commands.PortalResolution) *PortalResponse {
	return &PortalResponse{
		JobID:          res.JobID,
		JobName:        res.JobName,
		Requirements:   res.Requirements,
		JobSiteName:    res.JobSiteName,
		JobSiteAddress: res.JobSiteAddress,
		DueDate:        res.DueDate,
		ContractorName: res.ContractorName,
		CompanyName:    res.CompanyName,
		CampaignType:   res.CampaignType,
		ExpiresAt:      res.TokenExpiresAt,
		Submitted:      res.Submitted,
	}
}
