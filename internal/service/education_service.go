package service

import (
	"thinking_styles_backend/internal/scoring"
)

type EducationService struct {
	Engine *EngineHolder
}

func NewEducationService(engine *EngineHolder) *EducationService {
	return &EducationService{Engine: engine}
}

func (s *EducationService) Mapping(primary, secondary string) scoring.EducationMapping {
	return s.Engine.Get().MapEducation(primary, secondary)
}

func (s *EducationService) StudyTips() scoring.StudyTips {
	return s.Engine.Get().StudyTips()
}

func (s *EducationService) Institutions() []scoring.Institution {
	return s.Engine.Get().Institutions()
}
