package menu

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// OverlayStore reads the live on/off switches the counter staff
// toggles during service. Each document maps an item id to a boolean.
type OverlayStore interface {
	BoolMap(ctx context.Context, key string) (map[string]bool, error)
}

type Config struct {
	MenuCSVURL        string
	PromotionsCSVURL  string
	DeliveryFeeCSVURL string
	BurgerCSVURL      string
	PizzaExtraCSVURL  string
	ContactCSVURL     string
}

// Service assembles the live catalog: spreadsheet CSVs for the data,
// store documents for availability/visibility overlays.
type Service struct {
	cfg     Config
	client  *http.Client
	overlay OverlayStore
	logger  *zap.Logger
}

func NewService(cfg Config, overlay OverlayStore, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		client:  &http.Client{Timeout: 20 * time.Second},
		overlay: overlay,
		logger:  logger,
	}
}

func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	sources := map[string]string{
		"menu":       s.cfg.MenuCSVURL,
		"promotions": s.cfg.PromotionsCSVURL,
		"delivery":   s.cfg.DeliveryFeeCSVURL,
		"burger":     s.cfg.BurgerCSVURL,
		"extras":     s.cfg.PizzaExtraCSVURL,
		"contact":    s.cfg.ContactCSVURL,
	}

	texts := make(map[string]string, len(sources))
	var mu sync.Mutex
	var wg sync.WaitGroup
	var menuErr error

	for name, url := range sources {
		if url == "" {
			continue
		}
		wg.Add(1)
		go func(name, url string) {
			defer wg.Done()
			text, err := s.fetchCSV(ctx, url)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Only the item sheet is load-bearing; the rest
				// degrades to an empty section.
				if name == "menu" {
					menuErr = fmt.Errorf("fetch menu sheet: %w", err)
				} else {
					s.logger.Warn("sheet fetch failed",
						zap.String("sheet", name), zap.Error(err))
				}
				return
			}
			texts[name] = text
		}(name, url)
	}
	wg.Wait()

	if menuErr != nil {
		return nil, menuErr
	}
	if texts["menu"] == "" {
		return nil, fmt.Errorf("menu sheet url not configured")
	}

	catalog := &Catalog{}
	itemRecords, err := parseRecords(texts["menu"])
	if err != nil {
		return nil, fmt.Errorf("parse menu sheet: %w", err)
	}
	catalog.Items = buildItems(itemRecords)

	for name, text := range texts {
		if name == "menu" || text == "" {
			continue
		}
		records, err := parseRecords(text)
		if err != nil {
			s.logger.Warn("sheet parse failed", zap.String("sheet", name), zap.Error(err))
			continue
		}
		switch name {
		case "promotions":
			catalog.Promotions = buildPromotions(records)
		case "delivery":
			catalog.DeliveryZones = buildDeliveryZones(records)
		case "burger":
			catalog.BurgerIngredients = buildIngredients(records)
		case "extras":
			catalog.PizzaExtras = buildExtras(records)
		case "contact":
			catalog.Contact = buildContact(records)
		}
	}

	s.applyOverlays(ctx, catalog)
	return catalog, nil
}

func (s *Service) fetchCSV(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// applyOverlays folds the store-held switches into the catalog:
// hidden entries disappear entirely, switched-off entries stay visible
// but unavailable. Overlay read failures leave the sheet defaults.
func (s *Service) applyOverlays(ctx context.Context, catalog *Catalog) {
	if s.overlay == nil {
		return
	}

	itemStatus := s.boolMap(ctx, "config/item_status")
	itemVisibility := s.boolMap(ctx, "config/item_visibility")
	itemExtras := s.boolMap(ctx, "config/item_extras_status")
	halfStatus := s.boolMap(ctx, "config/pizza_half_status")
	ingredientStatus := s.boolMap(ctx, "config/ingredient_status")
	ingredientVisibility := s.boolMap(ctx, "config/ingredient_visibility")
	extraStatus := s.boolMap(ctx, "config/extra_status")
	extraVisibility := s.boolMap(ctx, "config/extra_visibility")

	items := catalog.Items[:0]
	for _, item := range catalog.Items {
		if visible, ok := itemVisibility[item.ID]; ok && !visible {
			continue
		}
		if on, ok := itemStatus[item.ID]; ok && !on {
			item.Available = false
		}
		if accepts, ok := itemExtras[item.ID]; ok {
			item.AcceptsExtras = accepts
		} else {
			item.AcceptsExtras = item.IsPizza
		}
		if item.IsPizza {
			allow, ok := halfStatus[item.ID]
			item.AllowHalf = !ok || allow
		}
		items = append(items, item)
	}
	catalog.Items = items

	ingredients := catalog.BurgerIngredients[:0]
	for _, ing := range catalog.BurgerIngredients {
		if visible, ok := ingredientVisibility[ing.ID]; ok && !visible {
			continue
		}
		if on, ok := ingredientStatus[ing.ID]; ok && !on {
			ing.Available = false
		}
		ingredients = append(ingredients, ing)
	}
	catalog.BurgerIngredients = ingredients

	extras := catalog.PizzaExtras[:0]
	for _, extra := range catalog.PizzaExtras {
		if visible, ok := extraVisibility[extra.ID]; ok && !visible {
			continue
		}
		if on, ok := extraStatus[extra.ID]; ok && !on {
			extra.Available = false
		}
		extras = append(extras, extra)
	}
	catalog.PizzaExtras = extras
}

func (s *Service) boolMap(ctx context.Context, key string) map[string]bool {
	values, err := s.overlay.BoolMap(ctx, key)
	if err != nil {
		s.logger.Warn("overlay read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return values
}
