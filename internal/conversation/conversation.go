// Package conversation реализует сценарии бесед магазина поверх сессионных
// акторов: меню покупателя, просмотр каталога, корзину, оформление заказа и
// админские экраны. Каждая беседа исполняется на горутине своего актора,
// поэтому состояние (корзина, стек категорий) не требует синхронизации.
package conversation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/localization"
	"github.com/avolkhin/shopbot/internal/metrics"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/service"
	"github.com/avolkhin/shopbot/internal/session"
	"github.com/avolkhin/shopbot/internal/telegram"
)

// кнопки c этим payload обрабатываются внутри бесед
const (
	doneCallbackData = "cmd_done"
	skipCallbackData = "cmd_skip"
)

const orderHistoryLimit = 20

type Config struct {
	CurrencySymbol        string
	EnabledLanguages      []string
	DefaultLanguage       string
	FallbackLanguage      string
	GuideURL              string
	DisplayWelcomeMessage bool
	// OperatorChatIDs получают уведомление о каждом новом заказе независимо
	// от живого режима админов.
	OperatorChatIDs []int64
}

// NewFactory возвращает фабрику бесед для диспетчера сессий.
func NewFactory(services *service.AppServices, m *metrics.Metrics, cfg Config) session.ConversationFactory {
	return func(a *session.Actor, first *telegram.Update) func() error {
		c := &Conversation{
			actor:    a,
			services: services,
			metrics:  m,
			cfg:      cfg,
			cart:     NewCart(),
		}
		return func() error { return c.Run(first) }
	}
}

// Conversation — состояние одной беседы. Живет от первого события пользователя
// до остановки сессии.
type Conversation struct {
	actor    *session.Actor
	services *service.AppServices
	metrics  *metrics.Metrics
	cfg      Config

	loc   *localization.Localization
	user  *domain.User
	admin *domain.Admin
	cart  *Cart
}

// Run — точка входа беседы. Классифицирует завершение: таймаут простоя
// превращается в прощальное сообщение, остановка процесса — в тихий выход,
// паника сценария — в извинение и лог.
func (c *Conversation) Run(first *telegram.Update) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.actor.Logger().WithField("panic", r).Error("conversation panicked")
			c.sayBestEffort("fatal_conversation_exception")
			err = fmt.Errorf("conversation panic: %v", r)
		}
	}()

	if setupErr := c.setup(first); setupErr != nil {
		return setupErr
	}

	if c.cfg.DisplayWelcomeMessage {
		if sendErr := c.say("conversation_after_start"); sendErr != nil {
			return sendErr
		}
	}

	runErr := c.mainLoop()
	return c.classify(runErr)
}

// setup регистрирует пользователя и собирает локализацию под его язык.
func (c *Conversation) setup(first *telegram.Update) error {
	user, admin, err := c.services.UserService.RegisterOrFetch(c.actor.Context(), first)
	if err != nil {
		return fmt.Errorf("conversation setup: %w", err)
	}
	c.user = user
	c.admin = admin

	lang := localization.Match(user.Language, c.cfg.EnabledLanguages, c.cfg.DefaultLanguage)
	c.loc = localization.New(localization.Args{
		Language: lang,
		Fallback: c.cfg.FallbackLanguage,
	})
	return nil
}

func (c *Conversation) mainLoop() error {
	if c.isManager() {
		return c.adminMenu()
	}
	return c.userMenu()
}

// isManager сообщает, открывать ли админское меню. Запись админа без единого
// права бесполезна и ведет себя как обычный покупатель.
func (c *Conversation) isManager() bool {
	a := c.admin
	return a != nil && (a.IsOwner || a.EditProducts || a.ReceiveOrders)
}

func (c *Conversation) classify(err error) error {
	if err == nil {
		return nil
	}
	var stopped *session.StoppedError
	if errors.As(err, &stopped) {
		if stopped.Reason == session.StopReasonTimeout {
			c.metrics.SessionsExpired.Inc()
			c.sayBestEffort("conversation_expired")
		}
		return nil
	}
	if errors.Is(err, session.ErrCancelled) {
		// отмена дошла до верха сценария, беседа просто завершается
		return nil
	}
	return err
}

// userMenu крутит главное меню покупателя до остановки сессии.
func (c *Conversation) userMenu() error {
	for {
		credit, creditErr := c.services.UserService.Credit(c.actor.Context(), c.user.ID)
		if creditErr != nil {
			return fmt.Errorf("loading wallet: %w", creditErr)
		}

		options := []string{
			c.loc.Get("menu_order"),
			c.loc.Get("menu_order_status"),
			c.loc.Get("menu_language"),
			c.loc.Get("menu_help"),
			c.loc.Get("menu_bot_info"),
		}
		keyboard := singleColumnKeyboard(options)
		if err := c.sayKeyboard(keyboard, "conversation_open_user_menu", "credit", c.price(credit)); err != nil {
			return err
		}

		choice, err := c.actor.WaitMessageIn(options, false)
		if err != nil {
			return err
		}

		var menuErr error
		switch choice {
		case c.loc.Get("menu_order"):
			menuErr = c.orderMenu()
		case c.loc.Get("menu_order_status"):
			menuErr = c.orderStatus()
		case c.loc.Get("menu_language"):
			menuErr = c.languageMenu()
		case c.loc.Get("menu_help"):
			menuErr = c.helpMenu()
		case c.loc.Get("menu_bot_info"):
			menuErr = c.say("bot_info")
		}
		if menuErr != nil && !errors.Is(menuErr, session.ErrCancelled) {
			return menuErr
		}
	}
}

// orderStatus показывает последние заказы пользователя.
func (c *Conversation) orderStatus() error {
	ctx := c.actor.Context()
	orders, err := c.services.OrderService.Latest(ctx, c.user.ID, orderHistoryLimit)
	if err != nil {
		return fmt.Errorf("loading order history: %w", err)
	}
	if len(orders) == 0 {
		return c.say("error_no_orders")
	}
	for i := range orders {
		details, detailsErr := c.services.OrderService.Details(ctx, &orders[i])
		if detailsErr != nil {
			return fmt.Errorf("loading order details: %w", detailsErr)
		}
		if sendErr := c.sendText(c.userOrderText(details), nil); sendErr != nil {
			return sendErr
		}
	}
	return nil
}

// languageMenu переключает язык беседы и запоминает выбор в профиле.
func (c *Conversation) languageMenu() error {
	names := map[string]string{
		"ru": "🇷🇺 Русский",
		"en": "🇬🇧 English",
	}
	var options []string
	byName := make(map[string]string)
	for _, lang := range c.cfg.EnabledLanguages {
		name, ok := names[lang]
		if !ok {
			name = lang
		}
		options = append(options, name)
		byName[name] = lang
	}
	if len(options) < 2 {
		return nil
	}

	if err := c.sayKeyboard(singleColumnKeyboard(options), "conversation_language_select"); err != nil {
		return err
	}
	choice, err := c.actor.WaitMessageIn(options, false)
	if err != nil {
		return err
	}

	lang := byName[choice]
	if updErr := c.services.UserService.UpdateLanguage(c.actor.Context(), c.user.ID, lang); updErr != nil {
		return updErr
	}
	c.user.Language = lang
	c.loc = localization.New(localization.Args{
		Language: lang,
		Fallback: c.cfg.FallbackLanguage,
	})
	return nil
}

func (c *Conversation) helpMenu() error {
	options := []string{
		c.loc.Get("menu_guide"),
		c.loc.Get("menu_contact_shopkeeper"),
		c.loc.Get("menu_cancel"),
	}
	if err := c.sayKeyboard(singleColumnKeyboard(options), "conversation_open_help_menu"); err != nil {
		return err
	}
	choice, err := c.actor.WaitMessageIn(options, false)
	if err != nil {
		return err
	}
	switch choice {
	case c.loc.Get("menu_guide"):
		return c.say("help_msg", "guide_url", c.cfg.GuideURL)
	case c.loc.Get("menu_contact_shopkeeper"):
		return c.contactShopkeeper()
	}
	return nil
}

func (c *Conversation) contactShopkeeper() error {
	ctx := c.actor.Context()
	admins, err := c.services.UserService.HelpAdmins(ctx)
	if err != nil {
		return fmt.Errorf("loading help admins: %w", err)
	}
	var mentions []string
	for _, admin := range admins {
		user, userErr := c.services.UserService.Find(ctx, admin.UserID)
		if userErr != nil {
			return fmt.Errorf("loading admin profile: %w", userErr)
		}
		mentions = append(mentions, user.String())
	}
	return c.say("contact_shopkeeper", "shopkeepers", strings.Join(mentions, "\n"))
}

// --- представление ---

// price форматирует сумму с символом валюты магазина.
func (c *Conversation) price(m money.Money) string {
	return c.loc.Get("currency_format_string", "value", m.String(), "symbol", c.cfg.CurrencySymbol)
}

// cartText собирает построчное описание корзины.
func (c *Conversation) cartText() string {
	var b strings.Builder
	for _, line := range c.cart.Lines() {
		b.WriteString(c.lineText(line.Product.Name, line.Size, line.Quantity, line.Total()))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *Conversation) lineText(name string, size *domain.Size, qty int, total money.Money) string {
	if size != nil {
		name = name + " " + size.Name
	}
	return fmt.Sprintf("%s x%d | %s", name, qty, c.price(total))
}

// orderText рендерит заказ для админа и операторских чатов.
func (c *Conversation) orderText(d *service.OrderDetails) string {
	var items strings.Builder
	for _, line := range d.Lines {
		unit := line.Product.Price
		if line.Size != nil {
			unit = &line.Size.Price
		}
		total := money.Money{}
		if unit != nil {
			total = unit.MulInt(int64(line.Quantity))
		}
		items.WriteString(c.lineText(line.Product.Name, line.Size, line.Quantity, total))
		items.WriteByte('\n')
	}

	notes := d.Order.Notes
	if notes == "" {
		notes = c.loc.Get("text_not_defined")
	}
	header := c.loc.Get("order_number", "id", fmt.Sprintf("%d", d.Order.ID)) + "\n" +
		c.deliveryText(d) + "\n"
	return header + c.loc.Get("order_format_string",
		"user", d.User.IdentifiableString(),
		"date", d.Order.CreatedAt.Format("02.01.2006 15:04"),
		"items", items.String(),
		"value", c.price(d.Total),
		"notes", notes,
	)
}

func (c *Conversation) deliveryText(d *service.OrderDetails) string {
	if d.Order.IsPickup {
		return c.loc.Get("text_pickup")
	}
	if d.Address != nil {
		return c.loc.Get("text_location") + " " + d.Address.Text
	}
	return c.loc.Get("text_not_defined")
}

// userOrderText рендерит заказ для его владельца, со статусом вместо покупателя.
func (c *Conversation) userOrderText(d *service.OrderDetails) string {
	statusEmoji, statusText := c.orderStatusStrings(d.Order)

	var items strings.Builder
	for _, line := range d.Lines {
		unit := line.Product.Price
		if line.Size != nil {
			unit = &line.Size.Price
		}
		total := money.Money{}
		if unit != nil {
			total = unit.MulInt(int64(line.Quantity))
		}
		items.WriteString(c.lineText(line.Product.Name, line.Size, line.Quantity, total))
		items.WriteByte('\n')
	}

	notes := d.Order.Notes
	if notes == "" {
		notes = c.loc.Get("text_not_defined")
	}
	text := c.loc.Get("order_number", "id", fmt.Sprintf("%d", d.Order.ID)) + "\n" +
		c.loc.Get("user_order_format_string",
			"status_emoji", statusEmoji,
			"status_text", statusText,
			"items", items.String(),
			"value", c.price(d.Total),
			"notes", notes,
		)
	if d.Order.RefundDate != nil && d.Order.RefundReason != "" {
		text += "\n" + c.loc.Get("refund_reason", "reason", d.Order.RefundReason)
	}
	return text
}

func (c *Conversation) orderStatusStrings(o *domain.Order) (emoji string, text string) {
	switch {
	case o.RefundDate != nil:
		return c.loc.Get("emoji_refunded"), c.loc.Get("text_refunded")
	case o.DeliveryDate != nil:
		return c.loc.Get("emoji_completed"), c.loc.Get("text_completed")
	default:
		return c.loc.Get("emoji_not_processed"), c.loc.Get("text_not_processed")
	}
}

// --- отправка ---

func (c *Conversation) say(key string, kv ...string) error {
	return c.sendText(c.loc.Get(key, kv...), nil)
}

func (c *Conversation) sayKeyboard(kb *telegram.ReplyKeyboard, key string, kv ...string) error {
	return c.sendText(c.loc.Get(key, kv...), &telegram.SendOptions{ReplyKeyboard: kb})
}

func (c *Conversation) sayInline(kb *telegram.InlineKeyboard, key string, kv ...string) (int64, error) {
	return c.actor.Sender().SendText(c.actor.Context(), c.actor.ChatID(), c.loc.Get(key, kv...),
		&telegram.SendOptions{InlineKeyboard: kb})
}

func (c *Conversation) sendText(text string, opts *telegram.SendOptions) error {
	_, err := c.actor.Sender().SendText(c.actor.Context(), c.actor.ChatID(), text, opts)
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// sayBestEffort используется на путях завершения, где ошибку отправки уже
// некому возвращать.
func (c *Conversation) sayBestEffort(key string, kv ...string) {
	if c.loc == nil {
		return
	}
	if err := c.sendText(c.loc.Get(key, kv...), nil); err != nil {
		c.actor.Logger().WithError(err).Warn("sending farewell message")
	}
}

// notify шлет сообщение в чужой чат (уведомления о заказах).
func (c *Conversation) notify(chatID int64, text string, opts *telegram.SendOptions) {
	if _, err := c.actor.Sender().SendText(c.actor.Context(), chatID, text, opts); err != nil {
		c.actor.Logger().WithError(err).WithField("target_chat_id", chatID).Warn("sending notification")
	}
}

func singleColumnKeyboard(options []string) *telegram.ReplyKeyboard {
	rows := make([][]telegram.ReplyButton, 0, len(options))
	for _, option := range options {
		rows = append(rows, []telegram.ReplyButton{{Text: option}})
	}
	return &telegram.ReplyKeyboard{Rows: rows, Resize: true}
}

func (c *Conversation) cancelButton() telegram.InlineButton {
	return telegram.InlineButton{Text: c.loc.Get("menu_cancel"), Data: telegram.CancelCallbackData}
}

func (c *Conversation) skipButton() telegram.InlineButton {
	return telegram.InlineButton{Text: c.loc.Get("menu_skip"), Data: skipCallbackData}
}
