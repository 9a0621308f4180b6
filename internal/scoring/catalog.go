package scoring

import "fmt"

// SHS 分科
const (
	TrackScience    = "SCIENCE"
	TrackBusiness   = "BUSINESS"
	TrackArts       = "ARTS"
	TrackTechnical  = "TECHNICAL"
	TrackVocational = "VOCATIONAL"
)

// 高校专业、职业、学习建议的分组
const (
	GroupAnalytical = "ANALYTICAL"
	GroupCreative   = "CREATIVE"
	GroupPractical  = "PRACTICAL"
	GroupConvergent = "CONVERGENT"
	GroupDivergent  = "DIVERGENT"

	TipsKolbConvergent      = "KOLB.CONVERGENT"
	TipsKolbDivergent       = "KOLB.DIVERGENT"
	TipsKolbAssimilative    = "KOLB.ASSIMILATIVE"
	TipsKolbAccommodative   = "KOLB.ACCOMMODATIVE"
	TipsSternbergAnalytical = "STERNBERG.ANALYTICAL"
	TipsSternbergCreative   = "STERNBERG.CREATIVE"
	TipsSternbergPractical  = "STERNBERG.PRACTICAL"
)

// 学习风格名。自定义题库可以直接用它们作类别
const (
	StyleConvergent    Category = "convergent"
	StyleDivergent     Category = "divergent"
	StyleAssimilative  Category = "assimilative"
	StyleAccommodative Category = "accommodative"
)

// MappingRule 某个主风格命中的分组，按顺序拼接
type MappingRule struct {
	SHSTracks        []string `json:"shsTracks"`
	TertiaryPrograms []string `json:"tertiaryPrograms"`
	Careers          []string `json:"careers"`
	LearningTips     []string `json:"learningTips"`
}

// Institution 高校及其开设专业
type Institution struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Programs []string `json:"programs"`
}

// StudyTips 通用学习建议，映射为空时由调用方兜底使用
type StudyTips struct {
	CulturalContext         []string `json:"culturalContext"`
	PracticalTips           []string `json:"practicalTips"`
	ResourceRecommendations []string `json:"resourceRecommendations"`
}

// Catalog 推荐静态表
type Catalog struct {
	SHSTracks        map[string][]string
	TertiaryPrograms map[string][]string
	Careers          map[string][]string
	LearningTips     map[string][]string
	Rules            map[Category]MappingRule
	Institutions     []Institution
	StudyTips        StudyTips
}

// validate 规则引用的分组必须存在
func (c *Catalog) validate() error {
	check := func(c Category, kind string, table map[string][]string, keys []string) error {
		for _, k := range keys {
			if _, ok := table[k]; !ok {
				return fmt.Errorf("rule %q references unknown %s bucket %q", c, kind, k)
			}
		}
		return nil
	}
	for cat, r := range c.Rules {
		if err := check(cat, "shs", c.SHSTracks, r.SHSTracks); err != nil {
			return err
		}
		if err := check(cat, "tertiary", c.TertiaryPrograms, r.TertiaryPrograms); err != nil {
			return err
		}
		if err := check(cat, "career", c.Careers, r.Careers); err != nil {
			return err
		}
		if err := check(cat, "learning tip", c.LearningTips, r.LearningTips); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCatalog 加纳教育推荐表。每次调用返回新实例。
//
// Kolb 模式中只有具体经验与聚合型共用一条规则，其余三个模式和双加工的两个维度
// 没有规则，映射结果为空。
func DefaultCatalog() *Catalog {
	return &Catalog{
		SHSTracks: map[string][]string{
			TrackScience:    {"General Science", "Agricultural Science", "Technical Science", "Home Economics"},
			TrackBusiness:   {"Business (Accounting)", "Business (Management)", "Business (Secretarial)", "Business (Marketing)"},
			TrackArts:       {"General Arts", "Visual Arts", "Music", "Drama"},
			TrackTechnical:  {"Technical (Engineering)", "Technical (Construction)", "Technical (Electronics)", "Technical (Automotive)"},
			TrackVocational: {"Agricultural Science", "Home Economics", "Technical Skills", "Business Skills"},
		},
		TertiaryPrograms: map[string][]string{
			GroupAnalytical: {"Medicine and Surgery", "Engineering", "Computer Science", "Law", "Pharmacy"},
			GroupCreative:   {"Architecture", "Business Administration", "Education", "Psychology", "Arts"},
			GroupPractical:  {"Business Administration", "Nursing", "Agriculture", "Education", "Engineering Technology"},
		},
		Careers: map[string][]string{
			GroupAnalytical: {
				"Research Scientist", "Data Analyst", "Financial Analyst", "Software Engineer", "Medical Doctor",
				"Lawyer", "Engineer", "Accountant", "Statistician", "Pharmacist",
			},
			GroupCreative: {
				"Graphic Designer", "Architect", "Artist", "Writer", "Marketing Manager",
				"Entrepreneur", "Fashion Designer", "Musician", "Advertising Executive", "Product Designer",
			},
			GroupPractical: {
				"Project Manager", "Business Manager", "Teacher", "Nurse", "Social Worker",
				"Police Officer", "Military Officer", "Sales Manager", "Human Resources Manager", "Operations Manager",
			},
			GroupConvergent: {
				"Engineer", "Computer Programmer", "Financial Analyst", "Research Scientist",
				"Mathematician", "Physicist", "Chemist", "Statistician",
			},
			GroupDivergent: {
				"Counselor", "Social Worker", "Teacher", "Artist",
				"Writer", "Marketing Manager", "Human Resources Manager", "Psychologist",
			},
		},
		LearningTips: map[string][]string{
			TipsKolbConvergent: {
				"Focus on practical applications of concepts",
				"Use hands-on learning activities",
				"Work on problem-solving exercises",
				"Engage in laboratory work and experiments",
				"Apply theories to real-world situations",
			},
			TipsKolbDivergent: {
				"Use brainstorming and creative thinking exercises",
				"Engage in group discussions and collaborative learning",
				"Explore multiple perspectives on topics",
				"Use case studies and real-world examples",
				"Participate in role-playing activities",
			},
			TipsKolbAssimilative: {
				"Focus on theoretical understanding and concepts",
				"Use lectures and reading materials",
				"Create concept maps and diagrams",
				"Engage in research and analysis",
				"Work on theoretical problems and case studies",
			},
			TipsKolbAccommodative: {
				"Learn through trial and error",
				"Engage in experiential learning activities",
				"Use simulations and practical exercises",
				"Work on projects and real-world applications",
				"Learn from mistakes and feedback",
			},
			TipsSternbergAnalytical: {
				"Focus on logical reasoning and analysis",
				"Use structured learning materials",
				"Engage in critical thinking exercises",
				"Work on problem-solving tasks",
				"Use systematic study methods",
			},
			TipsSternbergCreative: {
				"Use creative and innovative learning methods",
				"Engage in brainstorming and idea generation",
				"Work on open-ended projects",
				"Use visual and artistic learning tools",
				"Explore multiple solutions to problems",
			},
			TipsSternbergPractical: {
				"Focus on real-world applications",
				"Use hands-on learning experiences",
				"Engage in practical problem-solving",
				"Work on projects with real outcomes",
				"Learn through experience and practice",
			},
		},
		Rules: map[Category]MappingRule{
			Analytical: {
				SHSTracks:        []string{TrackScience, TrackTechnical},
				TertiaryPrograms: []string{GroupAnalytical},
				Careers:          []string{GroupAnalytical},
				LearningTips:     []string{TipsSternbergAnalytical},
			},
			Creative: {
				SHSTracks:        []string{TrackArts, TrackBusiness},
				TertiaryPrograms: []string{GroupCreative},
				Careers:          []string{GroupCreative},
				LearningTips:     []string{TipsSternbergCreative},
			},
			Practical: {
				SHSTracks:        []string{TrackBusiness, TrackVocational, TrackTechnical},
				TertiaryPrograms: []string{GroupPractical},
				Careers:          []string{GroupPractical},
				LearningTips:     []string{TipsSternbergPractical},
			},
			ConcreteExperience: {
				SHSTracks:        []string{TrackScience, TrackTechnical},
				TertiaryPrograms: []string{GroupAnalytical},
				Careers:          []string{GroupConvergent},
				LearningTips:     []string{TipsKolbConvergent},
			},
			StyleConvergent: {
				SHSTracks:        []string{TrackScience, TrackTechnical},
				TertiaryPrograms: []string{GroupAnalytical},
				Careers:          []string{GroupConvergent},
				LearningTips:     []string{TipsKolbConvergent},
			},
			StyleDivergent: {
				SHSTracks:        []string{TrackArts, TrackBusiness},
				TertiaryPrograms: []string{GroupCreative},
				Careers:          []string{GroupDivergent},
				LearningTips:     []string{TipsKolbDivergent},
			},
			StyleAssimilative: {
				LearningTips: []string{TipsKolbAssimilative},
			},
			StyleAccommodative: {
				SHSTracks:        []string{TrackBusiness, TrackVocational, TrackTechnical},
				TertiaryPrograms: []string{GroupPractical},
				LearningTips:     []string{TipsKolbAccommodative},
			},
		},
		Institutions: []Institution{
			{Name: "University of Ghana", Kind: "university", Programs: []string{
				"Medicine and Surgery", "Law", "Engineering", "Business Administration",
				"Computer Science", "Psychology", "Education", "Agriculture",
			}},
			{Name: "Kwame Nkrumah University of Science and Technology", Kind: "university", Programs: []string{
				"Engineering (Civil, Mechanical, Electrical)", "Architecture", "Pharmacy", "Medicine",
				"Computer Science", "Agriculture", "Business Administration",
			}},
			{Name: "University of Cape Coast", Kind: "university", Programs: []string{
				"Education", "Psychology", "Business Administration", "Computer Science", "Agriculture", "Nursing",
			}},
			{Name: "University for Development Studies", Kind: "university", Programs: []string{
				"Medicine", "Agriculture", "Development Studies", "Business Administration", "Computer Science",
			}},
			{Name: "Accra Technical University", Kind: "technical_university", Programs: []string{
				"Engineering Technology", "Business Administration", "Computer Science", "Fashion Design", "Hospitality Management",
			}},
			{Name: "Kumasi Technical University", Kind: "technical_university", Programs: []string{
				"Engineering Technology", "Business Administration", "Computer Science", "Agriculture Technology",
			}},
			{Name: "Cape Coast Technical University", Kind: "technical_university", Programs: []string{
				"Engineering Technology", "Business Administration", "Computer Science", "Agriculture Technology",
			}},
			{Name: "Ghana Institute of Management and Public Administration", Kind: "college", Programs: []string{
				"Public Administration", "Business Administration", "Computer Science", "Development Studies",
			}},
			{Name: "Ghana Technology University College", Kind: "college", Programs: []string{
				"Computer Science", "Engineering", "Business Administration", "Information Technology",
			}},
		},
		StudyTips: StudyTips{
			CulturalContext: []string{
				"Consider Ghana's educational system structure (JHS → SHS → Tertiary)",
				"Understand the importance of WASSCE (West African Senior School Certificate Examination)",
				"Consider local job market demands and opportunities",
				"Factor in family expectations and cultural values",
				"Consider the role of community and extended family in career decisions",
			},
			PracticalTips: []string{
				"Focus on subjects that align with your chosen SHS track",
				"Develop both theoretical knowledge and practical skills",
				"Consider apprenticeship and vocational training options",
				"Network with professionals in your field of interest",
				"Stay updated with Ghana's economic and industrial developments",
			},
			ResourceRecommendations: []string{
				"Utilize Ghana Education Service resources",
				"Connect with career guidance counselors",
				"Attend career fairs and educational exhibitions",
				"Join professional associations in your field",
				"Consider mentorship programs with industry professionals",
			},
		},
	}
}
