package listing

import "github.com/justsurfingit/jobboard/internal/models"

// AlreadyApplied reports whether any application targets jobID.
func AlreadyApplied(jobID string, applications []models.JobApplication) bool {
	for _, a := range applications {
		if applicationJobID(a) == jobID {
			return true
		}
	}
	return false
}

// MoreFromCompany lists other postings of job's company that the user has
// not applied to yet, in source order, at most limit of them (limit <= 0
// means no limit).
func MoreFromCompany(job models.Job, jobs []models.Job, applications []models.JobApplication, limit int) []models.Job {
	applied := make(map[string]struct{}, len(applications))
	for _, a := range applications {
		applied[applicationJobID(a)] = struct{}{}
	}

	var out []models.Job
	for _, j := range jobs {
		if j.ID == job.ID || j.CompanyID != job.CompanyID {
			continue
		}
		if _, ok := applied[j.ID]; ok {
			continue
		}
		out = append(out, j)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// The user-application endpoint populates Job; older payloads only carry
// JobID.
func applicationJobID(a models.JobApplication) string {
	if a.JobID == "" && a.Job != nil {
		return a.Job.ID
	}
	return a.JobID
}
