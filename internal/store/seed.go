package store

import (
	"context"
	"fmt"
)

var seedCategories = []InsertCategory{
	{Name: "Programação", Description: "Desenvolvimento de software e web", IconName: "code-line", ImageURL: "https://images.unsplash.com/photo-1517694712202-14dd9538aa97"},
	{Name: "Idiomas", Description: "Aprendizado de idiomas estrangeiros", IconName: "translate", ImageURL: "https://images.unsplash.com/photo-1535016120720-40c646be5580"},
	{Name: "Música", Description: "Instrumentos musicais e teoria", IconName: "music-2-line", ImageURL: "https://images.unsplash.com/photo-1557838923-2985c318be48"},
	{Name: "Culinária", Description: "Técnicas de cozinha e receitas", IconName: "restaurant-line", ImageURL: "https://images.unsplash.com/photo-1601784551167-2c698216cad7"},
	{Name: "Esportes", Description: "Diferentes modalidades esportivas", IconName: "basketball-line", ImageURL: "https://images.unsplash.com/photo-1552674605-db6ffd4facb5"},
	{Name: "Negócios", Description: "Empreendedorismo e gestão", IconName: "briefcase-line", ImageURL: "https://images.unsplash.com/photo-1542744173-8e7e53415bb0"},
	{Name: "Matemática", Description: "Cálculo, álgebra e estatística", IconName: "calculator-line", ImageURL: "https://images.unsplash.com/photo-1551269901-5c5e14c25df7"},
	{Name: "Design", Description: "Design gráfico e UX/UI", IconName: "palette-line", ImageURL: "https://images.unsplash.com/photo-1558655146-9f40138edfeb"},
}

var seedSkills = []InsertSkill{
	{Name: "HTML/CSS", Category: "Programação", Description: "Fundamentos de web", IconName: "code-s-slash-line"},
	{Name: "JavaScript", Category: "Programação", Description: "Linguagem de programação web", IconName: "javascript-line"},
	{Name: "React", Category: "Programação", Description: "Biblioteca para interfaces", IconName: "reactjs-line"},
	{Name: "Inglês", Category: "Idiomas", Description: "Idioma global", IconName: "english-input"},
	{Name: "Espanhol", Category: "Idiomas", Description: "Segunda língua mais falada", IconName: "spain-fill"},
	{Name: "Piano", Category: "Música", Description: "Instrumento de teclas", IconName: "music-line"},
	{Name: "Violão", Category: "Música", Description: "Instrumento de cordas", IconName: "guitar-line"},
}

// Seed loads the initial categories and skills into an empty store. It is
// idempotent: a store that already has categories is left untouched, so it
// is safe to run on every startup against a durable backend.
func Seed(ctx context.Context, s Storage) error {
	existing, err := s.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("seed: listing categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, c := range seedCategories {
		if _, err := s.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("seed: category %q: %w", c.Name, err)
		}
	}
	for _, sk := range seedSkills {
		if _, err := s.CreateSkill(ctx, sk); err != nil {
			return fmt.Errorf("seed: skill %q: %w", sk.Name, err)
		}
	}
	return nil
}
