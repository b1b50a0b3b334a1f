package conversation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/internal/service"
	"github.com/avolkhin/shopbot/internal/session"
	"github.com/avolkhin/shopbot/internal/telegram"
)

const (
	categoryPrefix = "🗂 "
	maxQuantity    = 12

	qtyMinusData = "qty_minus"
	qtyPlusData  = "qty_plus"
)

var (
	removeDataRe   = regexp.MustCompile(`^remove_([0-9]+)_([0-9]+)$`)
	sizeDataRe     = regexp.MustCompile(`^size_([0-9]+)$`)
	phonePattern   = regexp.MustCompile(`^(\+?[0-9][0-9 ()-]{4,})$`)
	orderIDPattern = regexp.MustCompile(`#([0-9]+)`)
)

// orderMenu гоняет покупателя по дереву категорий. Стек хранит путь от корня:
// вершина — текущий уровень, nil на дне — корень каталога.
func (c *Conversation) orderMenu() error {
	ctx := c.actor.Context()
	stack := []*int64{nil}

	for {
		current := stack[len(stack)-1]
		categories, catErr := c.services.CatalogService.Categories(ctx, current)
		if catErr != nil {
			return fmt.Errorf("loading categories: %w", catErr)
		}
		products, prodErr := c.services.CatalogService.Products(ctx, current)
		if prodErr != nil {
			return fmt.Errorf("loading products: %w", prodErr)
		}

		var options []string
		byLabel := make(map[string]domain.Category, len(categories))
		for _, category := range categories {
			label := categoryPrefix + category.Name
			options = append(options, label)
			byLabel[label] = category
		}
		productByName := make(map[string]domain.Product, len(products))
		for _, product := range products {
			if !c.sellable(product) {
				continue
			}
			options = append(options, product.Name)
			productByName[product.Name] = product
		}
		options = append(options, c.loc.Get("menu_cart"))
		if len(stack) > 1 {
			options = append(options, c.loc.Get("menu_back"))
		}
		options = append(options, c.loc.Get("menu_home"))

		if err := c.sayKeyboard(singleColumnKeyboard(options), "conversation_choose_item"); err != nil {
			return err
		}
		choice, waitErr := c.actor.WaitMessageIn(options, false)
		if waitErr != nil {
			return waitErr
		}

		switch choice {
		case c.loc.Get("menu_cart"):
			if err := c.cartReview(); err != nil {
				if errors.Is(err, session.ErrCancelled) {
					continue
				}
				return err
			}
			if c.cart.Empty() {
				// корзина пуста после успешного заказа, возвращаемся в меню
				return nil
			}
		case c.loc.Get("menu_back"):
			stack = stack[:len(stack)-1]
		case c.loc.Get("menu_home"):
			return nil
		default:
			if category, ok := byLabel[choice]; ok {
				id := category.ID
				stack = append(stack, &id)
				continue
			}
			if product, ok := productByName[choice]; ok {
				if err := c.productDetail(product); err != nil && !errors.Is(err, session.ErrCancelled) {
					return err
				}
			}
		}
	}
}

// sellable сообщает, можно ли показывать товар в меню: нужна либо базовая цена,
// либо хотя бы один размер.
func (c *Conversation) sellable(product domain.Product) bool {
	if product.Price != nil {
		return true
	}
	sizes, err := c.services.CatalogService.Sizes(c.actor.Context(), product.ID)
	if err != nil {
		c.actor.Logger().WithError(err).Warn("loading product sizes")
		return false
	}
	return len(sizes) > 0
}

// productDetail показывает карточку товара и инлайн-степпер количества.
// Выбор размера предшествует степперу, если размеры заданы.
func (c *Conversation) productDetail(product domain.Product) error {
	ctx := c.actor.Context()
	sizes, sizesErr := c.services.CatalogService.Sizes(ctx, product.ID)
	if sizesErr != nil {
		return fmt.Errorf("loading product sizes: %w", sizesErr)
	}

	var size *domain.Size
	if len(sizes) > 0 {
		chosen, chooseErr := c.chooseSize(sizes)
		if chooseErr != nil {
			return chooseErr
		}
		size = chosen
	}

	unit := money.Money{}
	if size != nil {
		unit = size.Price
	} else if product.Price != nil {
		unit = *product.Price
	}

	qty := c.cart.Quantity(product.ID, size)
	if qty == 0 {
		qty = 1
	}

	caption := c.productCaption(product, size, unit)
	messageID, sendErr := c.sendProductCard(product, caption, c.stepperKeyboard(qty, unit))
	if sendErr != nil {
		return sendErr
	}

	for {
		reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{Cancellable: true})
		if waitErr != nil {
			return waitErr
		}
		switch reply.Callback.Data {
		case qtyPlusData:
			if qty < maxQuantity {
				qty++
			}
		case qtyMinusData:
			if qty > 0 {
				qty--
			}
		case doneCallbackData:
			previous := c.cart.Quantity(product.ID, size)
			c.cart.Set(product, size, qty)
			if qty == 0 && previous > 0 {
				return c.say("success_product_removed_from_cart", "product", product.Name)
			}
			if qty > 0 {
				return c.say("success_product_added_to_cart", "name", product.Name, "qty", strconv.Itoa(qty))
			}
			return nil
		default:
			continue
		}
		if err := c.actor.Sender().EditReplyMarkup(ctx, c.actor.ChatID(), messageID, c.stepperKeyboard(qty, unit)); err != nil {
			c.actor.Logger().WithError(err).Warn("updating quantity stepper")
		}
	}
}

func (c *Conversation) chooseSize(sizes []domain.Size) (*domain.Size, error) {
	rows := make([][]telegram.InlineButton, 0, len(sizes)+1)
	byID := make(map[int64]domain.Size, len(sizes))
	for _, size := range sizes {
		byID[size.ID] = size
		rows = append(rows, []telegram.InlineButton{{
			Text: size.Name + " | " + c.price(size.Price),
			Data: fmt.Sprintf("size_%d", size.ID),
		}})
	}
	rows = append(rows, []telegram.InlineButton{c.cancelButton()})

	if _, err := c.sayInline(&telegram.InlineKeyboard{Rows: rows}, "conversation_select_product_size"); err != nil {
		return nil, fmt.Errorf("sending size keyboard: %w", err)
	}
	for {
		reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{Cancellable: true})
		if waitErr != nil {
			return nil, waitErr
		}
		match := sizeDataRe.FindStringSubmatch(reply.Callback.Data)
		if match == nil {
			continue
		}
		id, _ := strconv.ParseInt(match[1], 10, 64)
		if size, ok := byID[id]; ok {
			return &size, nil
		}
	}
}

func (c *Conversation) productCaption(product domain.Product, size *domain.Size, unit money.Money) string {
	priceStr := c.price(unit)
	if size != nil {
		priceStr = size.Name + " | " + priceStr
	}
	if size == nil && product.Price == nil {
		priceStr = c.loc.Get("not_in_price_list")
	}
	inCart := ""
	if qty := c.cart.Quantity(product.ID, size); qty > 0 {
		inCart = c.loc.Get("in_cart_format_string", "quantity", strconv.Itoa(qty))
	}
	return c.loc.Get("product_format_string",
		"name", product.Name,
		"description", product.Description,
		"price", priceStr,
		"cart", inCart,
	)
}

func (c *Conversation) sendProductCard(product domain.Product, caption string, kb *telegram.InlineKeyboard) (int64, error) {
	ctx := c.actor.Context()
	opts := &telegram.SendOptions{InlineKeyboard: kb}
	if len(product.Image) > 0 {
		id, err := c.actor.Sender().SendPhoto(ctx, c.actor.ChatID(), product.Image, caption, opts)
		if err != nil {
			return 0, fmt.Errorf("sending product card: %w", err)
		}
		return id, nil
	}
	id, err := c.actor.Sender().SendText(ctx, c.actor.ChatID(), caption, opts)
	if err != nil {
		return 0, fmt.Errorf("sending product card: %w", err)
	}
	return id, nil
}

func (c *Conversation) stepperKeyboard(qty int, unit money.Money) *telegram.InlineKeyboard {
	total := unit.MulInt(int64(qty))
	return &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{
		{
			{Text: "➖", Data: qtyMinusData},
			{Text: fmt.Sprintf("%d | %s", qty, c.price(total)), Data: "noop"},
			{Text: "➕", Data: qtyPlusData},
		},
		{{Text: c.loc.Get("menu_done"), Data: doneCallbackData}},
		{c.cancelButton()},
	}}
}

// cartReview показывает корзину с построчным удалением. Кнопка Готово ведет
// в оформление заказа.
func (c *Conversation) cartReview() error {
	if c.cart.Empty() {
		return c.say("error_cart_empty")
	}

	messageID, sendErr := c.sayInline(c.cartKeyboard(), "conversation_check_cart",
		"cart_str", c.cartText(), "total", c.price(c.cart.Total()))
	if sendErr != nil {
		return fmt.Errorf("sending cart: %w", sendErr)
	}

	for {
		reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{Cancellable: true})
		if waitErr != nil {
			return waitErr
		}
		if reply.Callback.Data == doneCallbackData {
			return c.checkout()
		}
		match := removeDataRe.FindStringSubmatch(reply.Callback.Data)
		if match == nil {
			continue
		}
		productID, _ := strconv.ParseInt(match[1], 10, 64)
		sizeID, _ := strconv.ParseInt(match[2], 10, 64)
		c.cart.Remove(productID, sizeID)

		if c.cart.Empty() {
			return c.say("error_cart_empty")
		}
		text := c.loc.Get("conversation_check_cart", "cart_str", c.cartText(), "total", c.price(c.cart.Total()))
		if err := c.actor.Sender().EditText(c.actor.Context(), c.actor.ChatID(), messageID, text, c.cartKeyboard()); err != nil {
			c.actor.Logger().WithError(err).Warn("updating cart message")
		}
	}
}

func (c *Conversation) cartKeyboard() *telegram.InlineKeyboard {
	var rows [][]telegram.InlineButton
	for _, line := range c.cart.Lines() {
		var sizeID int64
		label := line.Product.Name
		if line.Size != nil {
			sizeID = line.Size.ID
			label += " " + line.Size.Name
		}
		rows = append(rows, []telegram.InlineButton{{
			Text: c.loc.Get("menu_remove_from_cart") + " " + label,
			Data: fmt.Sprintf("remove_%d_%d", line.Product.ID, sizeID),
		}})
	}
	rows = append(rows,
		[]telegram.InlineButton{{Text: c.loc.Get("menu_done"), Data: doneCallbackData}},
		[]telegram.InlineButton{c.cancelButton()},
	)
	return &telegram.InlineKeyboard{Rows: rows}
}

// checkout собирает адрес, телефон и комментарий, подтверждает заказ и
// атомарно размещает его. Отмена на любом шаге возвращает в корзину.
func (c *Conversation) checkout() error {
	address, isPickup, addrErr := c.askAddress()
	if addrErr != nil {
		return addrErr
	}

	phone, phoneErr := c.askPhone()
	if phoneErr != nil {
		return phoneErr
	}

	notes, notesErr := c.askNotes()
	if notesErr != nil {
		return notesErr
	}

	if confirmErr := c.confirmOrder(address, isPickup, notes); confirmErr != nil {
		return confirmErr
	}

	order, placeErr := c.services.OrderService.PlaceOrder(c.actor.Context(), service.PlaceOrderArgs{
		UserID:   c.user.ID,
		Address:  address,
		IsPickup: isPickup,
		Phone:    phone,
		Notes:    notes,
		Lines:    c.cart.OrderLines(),
		Total:    c.cart.Total(),
	})
	if placeErr != nil {
		return placeErr
	}
	c.metrics.OrdersPlaced.Inc()
	c.cart.Clear()

	details, detailsErr := c.services.OrderService.Details(c.actor.Context(), order)
	if detailsErr != nil {
		return fmt.Errorf("loading placed order: %w", detailsErr)
	}
	if err := c.say("success_order_created", "order", c.userOrderText(details)); err != nil {
		return err
	}
	c.notifyOrderPlaced(details)
	return nil
}

// askAddress принимает текстовый адрес, геолокацию или самовывоз.
func (c *Conversation) askAddress() (*repoargs.CreateAddress, bool, error) {
	pickup := c.loc.Get("menu_pickup")
	keyboard := &telegram.ReplyKeyboard{
		Rows: [][]telegram.ReplyButton{
			{{Text: c.loc.Get("menu_location"), RequestLocation: true}},
			{{Text: pickup}},
		},
		Resize:  true,
		OneTime: true,
	}
	if err := c.sayKeyboard(keyboard, "ask_for_address"); err != nil {
		return nil, false, err
	}

	for {
		reply, err := c.actor.WaitCallback(session.CallbackOptions{
			AcceptLocation: true,
			AcceptText:     true,
			Cancellable:    true,
		})
		if err != nil {
			return nil, false, err
		}
		if reply.Message == nil {
			continue
		}
		if loc := reply.Message.Location; loc != nil {
			return &repoargs.CreateAddress{
				UserID:    c.user.ID,
				Text:      fmt.Sprintf("%.6f, %.6f", loc.Latitude, loc.Longitude),
				Latitude:  &loc.Latitude,
				Longitude: &loc.Longitude,
			}, false, nil
		}
		if reply.Message.Text == pickup {
			return nil, true, nil
		}
		return &repoargs.CreateAddress{UserID: c.user.ID, Text: reply.Message.Text}, false, nil
	}
}

// askPhone принимает контакт или текстовый номер. Мусорный текст переспрашивается.
func (c *Conversation) askPhone() (string, error) {
	keyboard := &telegram.ReplyKeyboard{
		Rows:    [][]telegram.ReplyButton{{{Text: c.loc.Get("menu_share_phone"), RequestContact: true}}},
		Resize:  true,
		OneTime: true,
	}
	if err := c.sayKeyboard(keyboard, "ask_for_phone"); err != nil {
		return "", err
	}

	for {
		reply, err := c.actor.WaitCallback(session.CallbackOptions{
			AcceptContact: true,
			AcceptText:    true,
			Cancellable:   true,
		})
		if err != nil {
			return "", err
		}
		if reply.Message == nil {
			continue
		}
		if contact := reply.Message.Contact; contact != nil {
			return contact.Phone, nil
		}
		if phonePattern.MatchString(reply.Message.Text) {
			return reply.Message.Text, nil
		}
		if sayErr := c.say("error_invalid_phone"); sayErr != nil {
			return "", sayErr
		}
	}
}

func (c *Conversation) askNotes() (string, error) {
	kb := &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{
		{c.skipButton()},
		{c.cancelButton()},
	}}
	if _, err := c.sayInline(kb, "ask_order_notes"); err != nil {
		return "", fmt.Errorf("asking order notes: %w", err)
	}

	reply, err := c.actor.WaitCallback(session.CallbackOptions{AcceptText: true, Cancellable: true})
	if err != nil {
		return "", err
	}
	if reply.Message != nil {
		return reply.Message.Text, nil
	}
	return "", nil
}

func (c *Conversation) confirmOrder(address *repoargs.CreateAddress, isPickup bool, notes string) error {
	addressText := c.loc.Get("text_pickup")
	if !isPickup && address != nil {
		addressText = address.Text
	}
	if notes == "" {
		notes = c.loc.Get("text_not_defined")
	}
	kb := &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{
		{{Text: c.loc.Get("menu_confirm"), Data: doneCallbackData}},
		{c.cancelButton()},
	}}
	if _, err := c.sayInline(kb, "ask_final_confirmation",
		"cart_str", c.cartText(),
		"address", addressText,
		"total_amount", c.price(c.cart.Total()),
		"comment", notes,
	); err != nil {
		return fmt.Errorf("asking final confirmation: %w", err)
	}

	for {
		reply, err := c.actor.WaitCallback(session.CallbackOptions{Cancellable: true})
		if err != nil {
			return err
		}
		if reply.Callback.Data == doneCallbackData {
			return nil
		}
	}
}

// notifyOrderPlaced рассылает новый заказ админам в живом режиме и операторским
// чатам. Кнопки обработки прикрепляются только админам: операторские чаты
// информационные.
func (c *Conversation) notifyOrderPlaced(details *service.OrderDetails) {
	text := c.loc.Get("notification_order_placed", "order", c.orderText(details))

	admins, err := c.services.UserService.LiveAdmins(c.actor.Context())
	if err != nil {
		c.actor.Logger().WithError(err).Warn("loading live admins")
	}
	opts := &telegram.SendOptions{InlineKeyboard: c.liveOrderKeyboard()}
	for _, admin := range admins {
		c.notify(admin.UserID, text, opts)
	}
	for _, chatID := range c.cfg.OperatorChatIDs {
		c.notify(chatID, text, nil)
	}
}

func (c *Conversation) liveOrderKeyboard() *telegram.InlineKeyboard {
	return &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{{
		{Text: c.loc.Get("menu_complete"), Data: orderCompleteData},
		{Text: c.loc.Get("menu_refund"), Data: orderRefundData},
	}}}
}
