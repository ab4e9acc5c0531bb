package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ocenagor/admin-backend/internal/models"
	"github.com/ocenagor/admin-backend/internal/repository"
)

// SeedService генерирует фейковые данные для разработки.
type SeedService struct {
	userRepo    *repository.UserRepository
	companyRepo *repository.CompanyRepository
	reviewRepo  *repository.ReviewRepository
}

// NewSeedService создаёт новый сервис для генерации данных.
func NewSeedService(userRepo *repository.UserRepository, companyRepo *repository.CompanyRepository, reviewRepo *repository.ReviewRepository) *SeedService {
	return &SeedService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		reviewRepo:  reviewRepo,
	}
}

// SeedData генерирует компании и отзывы, плюс суперадмина admin@ocenagor.ru
// с паролем admin12345, если его ещё нет.
func (s *SeedService) SeedData(ctx context.Context, numCompanies, reviewsPerCompany int) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if err := s.ensureSuperAdmin(ctx); err != nil {
		return fmt.Errorf("seed service: %w", err)
	}

	companies, err := s.generateCompanies(ctx, numCompanies)
	if err != nil {
		return fmt.Errorf("seed service: %w", err)
	}

	if err := s.generateReviews(ctx, rng, companies, reviewsPerCompany); err != nil {
		return fmt.Errorf("seed service: %w", err)
	}

	return nil
}

func (s *SeedService) ensureSuperAdmin(ctx context.Context) error {
	const email = "admin@ocenagor.ru"
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	})
}

var seedCompanies = []struct {
	name string
	slug string
}{
	{"Кофейня \"Точка\"", "tochka-coffee"},
	{"Барбершоп \"Бритва\"", "britva-barbershop"},
	{"Автомойка \"Блеск\"", "blesk-wash"},
	{"Пекарня \"Хлебное место\"", "hlebnoe-mesto"},
	{"Стоматология \"Улыбка\"", "ulybka-dental"},
	{"Фитнес-клуб \"Форма\"", "forma-fitness"},
}

func (s *SeedService) generateCompanies(ctx context.Context, count int) ([]*models.Company, error) {
	if count > len(seedCompanies) {
		count = len(seedCompanies)
	}

	companies := make([]*models.Company, 0, count)
	for i := 0; i < count; i++ {
		if existing, err := s.companyRepo.GetBySlug(ctx, seedCompanies[i].slug); err == nil {
			companies = append(companies, existing)
			continue
		}
		company := &models.Company{
			Name:     seedCompanies[i].name,
			Slug:     seedCompanies[i].slug,
			IsActive: true,
		}
		if err := s.companyRepo.Create(ctx, company); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, nil
}

var seedComments = []string{
	"Очень понравилось, приду ещё!",
	"Быстро и вежливо, спасибо.",
	"Долго ждал, но результат хороший.",
	"Персонал не очень приветливый.",
	"Всё отлично, рекомендую.",
	"Цены выше, чем ожидал.",
}

var seedTags = []string{"персонал", "чистота", "скорость", "цены", "атмосфера"}

func (s *SeedService) generateReviews(ctx context.Context, rng *rand.Rand, companies []*models.Company, perCompany int) error {
	for _, company := range companies {
		for i := 0; i < perCompany; i++ {
			rating := 1 + rng.Intn(5)
			flowType := models.FlowLowRating
			if rating >= 4 {
				flowType = models.FlowHighRatingGamification
			}

			review := &models.Review{
				CompanyID:         company.ID,
				Rating:            rating,
				FlowType:          flowType,
				FeedbackOptions:   []string{},
				GamificationSteps: []string{},
			}

			if rng.Intn(2) == 0 {
				comment := seedComments[rng.Intn(len(seedComments))]
				review.Comment = &comment
			}
			if rng.Intn(3) == 0 {
				email := fmt.Sprintf("client%d@example.com", rng.Intn(1000))
				review.Email = &email
			}
			if rating <= 3 && rng.Intn(2) == 0 {
				review.FeedbackOptions = []string{seedTags[rng.Intn(len(seedTags))]}
			}

			if err := s.reviewRepo.Create(ctx, review); err != nil {
				return err
			}
		}
	}
	return nil
}
