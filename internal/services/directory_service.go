package services

// ExpertFilter narrows the expert directory listing. Query matches name and
// bio, Skill matches a skill name exactly (case-insensitive at the store).
type ExpertFilter struct {
	Query      string
	Skill      string
	PlatformID *uint
	CountryID  *uint
}

type ExpertDirectoryReader interface {
	ListExpertSnapshots(filter ExpertFilter) ([]ProfileSnapshot, error)
}

type DirectoryService struct {
	experts ExpertDirectoryReader
}

func NewDirectoryService(experts ExpertDirectoryReader) *DirectoryService {
	return &DirectoryService{experts: experts}
}

// ListComplete returns matching expert profiles that pass the hard completion
// gate. Incomplete profiles never show up in the public directory.
func (service *DirectoryService) ListComplete(filter ExpertFilter) ([]ProfileSnapshot, error) {
	snapshots, err := service.experts.ListExpertSnapshots(filter)
	if err != nil {
		return nil, err
	}

	complete := make([]ProfileSnapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		if EvaluateSnapshot(snapshot).Complete {
			complete = append(complete, snapshot)
		}
	}
	return complete, nil
}
