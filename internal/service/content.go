package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafidhia/storefront/internal/models"
)

// Content entities share the same thin CRUD shape: articles carry a
// title-derived slug, banners and FAQ entries are position-ordered, SEO
// settings are keyed by page.

type ArticleService struct {
	DB *gorm.DB
}

type ArticleInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *ArticleService) List(ctx context.Context, offset, limit int) (int64, []models.Article, error) {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Article{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("article: count: %w", err)
	}

	var items []models.Article
	if err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, fmt.Errorf("article: list: %w", err)
	}
	return total, items, nil
}

func (s *ArticleService) GetBySlug(ctx context.Context, articleSlug string) (*models.Article, error) {
	var article models.Article
	if err := s.DB.WithContext(ctx).Where("slug = ?", articleSlug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: article %q", ErrNotFound, articleSlug)
		}
		return nil, fmt.Errorf("article: get by slug: %w", err)
	}
	return &article, nil
}

func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (*models.Article, error) {
	articleSlug, err := deriveSlug(in.Title)
	if err != nil {
		return nil, err
	}
	if err := slugFree(ctx, s.DB, &models.Article{}, articleSlug, 0); err != nil {
		return nil, err
	}

	article := models.Article{Title: in.Title, Slug: articleSlug, Body: in.Body}
	if err := s.DB.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, fmt.Errorf("article: create: %w", err)
	}
	return &article, nil
}

func (s *ArticleService) Update(ctx context.Context, id uint, in ArticleInput) (*models.Article, error) {
	var article models.Article
	if err := s.DB.WithContext(ctx).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: article %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("article: update lookup: %w", err)
	}

	if in.Title != "" && in.Title != article.Title {
		newSlug, err := deriveSlug(in.Title)
		if err != nil {
			return nil, err
		}
		if err := slugFree(ctx, s.DB, &models.Article{}, newSlug, article.ID); err != nil {
			return nil, err
		}
		article.Title = in.Title
		article.Slug = newSlug
	}
	if in.Body != "" {
		article.Body = in.Body
	}

	if err := s.DB.WithContext(ctx).Save(&article).Error; err != nil {
		return nil, fmt.Errorf("article: update: %w", err)
	}
	return &article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Article{}, id)
	if res.Error != nil {
		return fmt.Errorf("article: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: article %d", ErrNotFound, id)
	}
	return nil
}

type BannerService struct {
	DB *gorm.DB
}

type BannerInput struct {
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	TargetURL string `json:"target_url"`
	Active    *bool  `json:"active"`
	Position  int    `json:"position"`
}

func (s *BannerService) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	q := s.DB.WithContext(ctx).Order("position ASC, id ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var items []models.Banner
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("banner: list: %w", err)
	}
	return items, nil
}

func (s *BannerService) Create(ctx context.Context, in BannerInput) (*models.Banner, error) {
	if in.ImageURL == "" {
		return nil, fmt.Errorf("%w: image url is required", ErrValidation)
	}

	banner := models.Banner{
		Title:     in.Title,
		ImageURL:  in.ImageURL,
		TargetURL: in.TargetURL,
		Active:    true,
		Position:  in.Position,
	}
	if in.Active != nil {
		banner.Active = *in.Active
	}
	if err := s.DB.WithContext(ctx).Create(&banner).Error; err != nil {
		return nil, fmt.Errorf("banner: create: %w", err)
	}
	return &banner, nil
}

func (s *BannerService) Update(ctx context.Context, id uint, in BannerInput) (*models.Banner, error) {
	var banner models.Banner
	if err := s.DB.WithContext(ctx).First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: banner %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("banner: update lookup: %w", err)
	}

	if in.Title != "" {
		banner.Title = in.Title
	}
	if in.ImageURL != "" {
		banner.ImageURL = in.ImageURL
	}
	if in.TargetURL != "" {
		banner.TargetURL = in.TargetURL
	}
	if in.Active != nil {
		banner.Active = *in.Active
	}
	if in.Position != 0 {
		banner.Position = in.Position
	}

	if err := s.DB.WithContext(ctx).Save(&banner).Error; err != nil {
		return nil, fmt.Errorf("banner: update: %w", err)
	}
	return &banner, nil
}

func (s *BannerService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Banner{}, id)
	if res.Error != nil {
		return fmt.Errorf("banner: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: banner %d", ErrNotFound, id)
	}
	return nil
}

type FaqService struct {
	DB *gorm.DB
}

type FaqInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

func (s *FaqService) List(ctx context.Context) ([]models.Faq, error) {
	var items []models.Faq
	if err := s.DB.WithContext(ctx).Order("position ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("faq: list: %w", err)
	}
	return items, nil
}

func (s *FaqService) Create(ctx context.Context, in FaqInput) (*models.Faq, error) {
	if in.Question == "" || in.Answer == "" {
		return nil, fmt.Errorf("%w: question and answer are required", ErrValidation)
	}

	faq := models.Faq{Question: in.Question, Answer: in.Answer, Position: in.Position}
	if err := s.DB.WithContext(ctx).Create(&faq).Error; err != nil {
		return nil, fmt.Errorf("faq: create: %w", err)
	}
	return &faq, nil
}

func (s *FaqService) Update(ctx context.Context, id uint, in FaqInput) (*models.Faq, error) {
	var faq models.Faq
	if err := s.DB.WithContext(ctx).First(&faq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: faq %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("faq: update lookup: %w", err)
	}

	if in.Question != "" {
		faq.Question = in.Question
	}
	if in.Answer != "" {
		faq.Answer = in.Answer
	}
	if in.Position != 0 {
		faq.Position = in.Position
	}

	if err := s.DB.WithContext(ctx).Save(&faq).Error; err != nil {
		return nil, fmt.Errorf("faq: update: %w", err)
	}
	return &faq, nil
}

func (s *FaqService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Faq{}, id)
	if res.Error != nil {
		return fmt.Errorf("faq: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: faq %d", ErrNotFound, id)
	}
	return nil
}

type SeoService struct {
	DB *gorm.DB
}

type SeoInput struct {
	Page        string `json:"page"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

func (s *SeoService) List(ctx context.Context) ([]models.SeoSetting, error) {
	var items []models.SeoSetting
	if err := s.DB.WithContext(ctx).Order("page ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("seo: list: %w", err)
	}
	return items, nil
}

func (s *SeoService) GetByPage(ctx context.Context, page string) (*models.SeoSetting, error) {
	var setting models.SeoSetting
	if err := s.DB.WithContext(ctx).Where("page = ?", page).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: seo setting for page %q", ErrNotFound, page)
		}
		return nil, fmt.Errorf("seo: get by page: %w", err)
	}
	return &setting, nil
}

func (s *SeoService) Create(ctx context.Context, in SeoInput) (*models.SeoSetting, error) {
	if in.Page == "" {
		return nil, fmt.Errorf("%w: page key is required", ErrValidation)
	}

	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.SeoSetting{}).Where("page = ?", in.Page).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("seo: page check: %w", err)
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: seo setting for page %q already exists", ErrConflict, in.Page)
	}

	setting := models.SeoSetting{
		Page:        in.Page,
		Title:       in.Title,
		Description: in.Description,
		Keywords:    in.Keywords,
	}
	if err := s.DB.WithContext(ctx).Create(&setting).Error; err != nil {
		return nil, fmt.Errorf("seo: create: %w", err)
	}
	return &setting, nil
}

func (s *SeoService) Update(ctx context.Context, id uint, in SeoInput) (*models.SeoSetting, error) {
	var setting models.SeoSetting
	if err := s.DB.WithContext(ctx).First(&setting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: seo setting %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("seo: update lookup: %w", err)
	}

	if in.Page != "" && in.Page != setting.Page {
		var n int64
		if err := s.DB.WithContext(ctx).Model(&models.SeoSetting{}).
			Where("page = ? AND id <> ?", in.Page, setting.ID).
			Count(&n).Error; err != nil {
			return nil, fmt.Errorf("seo: page check: %w", err)
		}
		if n > 0 {
			return nil, fmt.Errorf("%w: seo setting for page %q already exists", ErrConflict, in.Page)
		}
		setting.Page = in.Page
	}
	if in.Title != "" {
		setting.Title = in.Title
	}
	if in.Description != "" {
		setting.Description = in.Description
	}
	if in.Keywords != "" {
		setting.Keywords = in.Keywords
	}

	if err := s.DB.WithContext(ctx).Save(&setting).Error; err != nil {
		return nil, fmt.Errorf("seo: update: %w", err)
	}
	return &setting, nil
}

func (s *SeoService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.SeoSetting{}, id)
	if res.Error != nil {
		return fmt.Errorf("seo: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: seo setting %d", ErrNotFound, id)
	}
	return nil
}
