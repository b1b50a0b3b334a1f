package conversation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/repoargs"
	"github.com/avolkhin/shopbot/internal/session"
	"github.com/avolkhin/shopbot/internal/telegram"
)

const (
	orderCompleteData = "order_complete"
	orderRefundData   = "order_refund"

	toggleEditProductsData  = "toggle_edit_products"
	toggleReceiveOrdersData = "toggle_receive_orders"
	toggleDisplayOnHelpData = "toggle_display_on_help"
)

var (
	sizeLineRe = regexp.MustCompile(`^\s*(.+?)\s*-\s*([0-9][0-9.,]*)\s*$`)
	userIDRe   = regexp.MustCompile(`user_([0-9]+)`)
)

// adminMenu — главное меню менеджера. Пункты появляются по правам.
func (c *Conversation) adminMenu() error {
	for {
		var options []string
		if c.admin.EditProducts {
			options = append(options, c.loc.Get("menu_products"), c.loc.Get("menu_categories"))
		}
		if c.admin.ReceiveOrders {
			options = append(options, c.loc.Get("menu_orders"))
		}
		if c.admin.IsOwner {
			options = append(options, c.loc.Get("menu_edit_admins"))
		}
		options = append(options, c.loc.Get("menu_user_mode"))

		if err := c.sayKeyboard(singleColumnKeyboard(options), "conversation_open_admin_menu"); err != nil {
			return err
		}
		choice, waitErr := c.actor.WaitMessageIn(options, false)
		if waitErr != nil {
			return waitErr
		}

		var menuErr error
		switch choice {
		case c.loc.Get("menu_products"):
			menuErr = c.productsAdmin()
		case c.loc.Get("menu_categories"):
			menuErr = c.categoriesAdmin()
		case c.loc.Get("menu_orders"):
			menuErr = c.liveOrders()
		case c.loc.Get("menu_edit_admins"):
			menuErr = c.editAdmins()
		case c.loc.Get("menu_user_mode"):
			if err := c.say("conversation_switch_to_user_mode"); err != nil {
				return err
			}
			return c.userMenu()
		}
		if menuErr != nil && !errors.Is(menuErr, session.ErrCancelled) {
			return menuErr
		}
	}
}

// --- товары ---

func (c *Conversation) productsAdmin() error {
	ctx := c.actor.Context()
	products, err := c.services.CatalogService.AllProducts(ctx)
	if err != nil {
		return fmt.Errorf("loading products: %w", err)
	}

	options := []string{c.loc.Get("menu_add_product"), c.loc.Get("menu_delete_product")}
	byName := make(map[string]domain.Product, len(products))
	for _, product := range products {
		options = append(options, product.Name)
		byName[product.Name] = product
	}
	options = append(options, c.loc.Get("menu_cancel"))

	if sendErr := c.sayKeyboard(singleColumnKeyboard(options), "conversation_admin_select_product"); sendErr != nil {
		return sendErr
	}
	choice, waitErr := c.actor.WaitMessageIn(options, false)
	if waitErr != nil {
		return waitErr
	}

	switch choice {
	case c.loc.Get("menu_cancel"):
		return nil
	case c.loc.Get("menu_add_product"):
		return c.editProduct(nil)
	case c.loc.Get("menu_delete_product"):
		return c.deleteProduct(products)
	default:
		product := byName[choice]
		return c.editProduct(&product)
	}
}

// editProduct проводит менеджера по полям товара. При редактировании каждое
// поле можно пропустить, оставив прежнее значение. Совпадение имени с другим
// товаром переспрашивается без каких-либо изменений в каталоге.
func (c *Conversation) editProduct(existing *domain.Product) error {
	ctx := c.actor.Context()

	name, nameErr := c.askProductName(existing)
	if nameErr != nil {
		return nameErr
	}

	var currentDescription string
	if existing != nil {
		currentDescription = existing.Description
	}
	description, descErr := c.askText("ask_product_description", currentDescription, existing != nil)
	if descErr != nil {
		return descErr
	}

	sizes, keepSizes, sizesErr := c.askSizes(existing)
	if sizesErr != nil {
		return sizesErr
	}

	// базовая цена есть только у товара без размеров
	var price *money.Money
	sized := len(sizes) > 0
	if keepSizes {
		current, curErr := c.services.CatalogService.Sizes(ctx, existing.ID)
		if curErr != nil {
			return fmt.Errorf("loading kept sizes: %w", curErr)
		}
		sized = len(current) > 0
		if sized {
			price = existing.Price
		}
	}
	if !sized {
		parsed, priceErr := c.askPrice(existing)
		if priceErr != nil {
			return priceErr
		}
		price = parsed
	}

	categoryID, catErr := c.askProductCategory(existing)
	if catErr != nil {
		return catErr
	}

	args := repoargs.SaveProduct{
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
	}
	if existing != nil {
		args.ID = existing.ID
	}
	product, saveErr := c.services.CatalogService.SaveProduct(ctx, args, sizes, keepSizes)
	if saveErr != nil {
		return fmt.Errorf("saving product: %w", saveErr)
	}

	if photoErr := c.askProductImage(product.ID); photoErr != nil {
		return photoErr
	}
	return c.say("success_product_edited")
}

func (c *Conversation) askProductName(existing *domain.Product) (string, error) {
	ctx := c.actor.Context()
	var current string
	if existing != nil {
		current = existing.Name
	}
	for {
		name, err := c.askText("ask_product_name", current, existing != nil)
		if err != nil {
			return "", err
		}
		other, findErr := c.services.CatalogService.FindProductByName(ctx, name)
		if findErr != nil {
			if errors.Is(findErr, domain.ErrRecordNotFound) {
				return name, nil
			}
			return "", fmt.Errorf("checking product name: %w", findErr)
		}
		if existing != nil && other.ID == existing.ID {
			return name, nil
		}
		if sayErr := c.say("error_duplicate_name"); sayErr != nil {
			return "", sayErr
		}
	}
}

// askSizes разбирает список размеров вида "имя - цена", по одному на строку.
// X выключает размеры, Пропустить при редактировании оставляет прежний набор.
func (c *Conversation) askSizes(existing *domain.Product) ([]repoargs.SizeSpec, bool, error) {
	ctx := c.actor.Context()
	kb := &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{{c.cancelButton()}}}
	if existing != nil {
		currentSizes, sizesErr := c.services.CatalogService.Sizes(ctx, existing.ID)
		if sizesErr != nil {
			return nil, false, fmt.Errorf("loading current sizes: %w", sizesErr)
		}
		var lines []string
		for _, size := range currentSizes {
			lines = append(lines, size.Name+" - "+size.Price.String())
		}
		kb.Rows = [][]telegram.InlineButton{{c.skipButton()}, {c.cancelButton()}}
		if _, err := c.sayInline(kb, "ask_product_sizes"); err != nil {
			return nil, false, fmt.Errorf("asking sizes: %w", err)
		}
		if err := c.say("current_sizes", "sizes_str", strings.Join(lines, "\n")); err != nil {
			return nil, false, err
		}
	} else {
		if _, err := c.sayInline(kb, "ask_product_sizes"); err != nil {
			return nil, false, fmt.Errorf("asking sizes: %w", err)
		}
	}

	for {
		reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{AcceptText: true, Cancellable: true})
		if waitErr != nil {
			return nil, false, waitErr
		}
		if reply.Callback != nil {
			if reply.Callback.Data == skipCallbackData && existing != nil {
				return nil, true, nil
			}
			continue
		}
		text := strings.TrimSpace(reply.Message.Text)
		if strings.EqualFold(text, "x") || strings.EqualFold(text, "х") {
			return nil, false, nil
		}

		specs, ok := parseSizeList(text)
		if ok {
			return specs, false, nil
		}
		if sayErr := c.say("ask_product_sizes"); sayErr != nil {
			return nil, false, sayErr
		}
	}
}

func parseSizeList(text string) ([]repoargs.SizeSpec, bool) {
	var specs []repoargs.SizeSpec
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		match := sizeLineRe.FindStringSubmatch(line)
		if match == nil {
			return nil, false
		}
		price, err := money.Parse(match[2])
		if err != nil {
			return nil, false
		}
		specs = append(specs, repoargs.SizeSpec{Name: match[1], Price: price})
	}
	return specs, len(specs) > 0
}

// askPrice принимает базовую цену товара. X означает товар без цены
// (не продается, но виден менеджеру).
func (c *Conversation) askPrice(existing *domain.Product) (*money.Money, error) {
	kb := &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{{c.cancelButton()}}}
	if existing != nil {
		current := c.loc.Get("not_in_price_list")
		if existing.Price != nil {
			current = c.price(*existing.Price)
		}
		kb.Rows = [][]telegram.InlineButton{{c.skipButton()}, {c.cancelButton()}}
		if _, err := c.sayInline(kb, "ask_product_price"); err != nil {
			return nil, fmt.Errorf("asking price: %w", err)
		}
		if err := c.say("edit_current_value", "value", current); err != nil {
			return nil, err
		}
	} else {
		if _, err := c.sayInline(kb, "ask_product_price"); err != nil {
			return nil, fmt.Errorf("asking price: %w", err)
		}
	}

	for {
		reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{AcceptText: true, Cancellable: true})
		if waitErr != nil {
			return nil, waitErr
		}
		if reply.Callback != nil {
			if reply.Callback.Data == skipCallbackData && existing != nil {
				return existing.Price, nil
			}
			continue
		}
		text := strings.TrimSpace(reply.Message.Text)
		if strings.EqualFold(text, "x") || strings.EqualFold(text, "х") {
			return nil, nil
		}
		price, parseErr := money.Parse(text)
		if parseErr != nil {
			if sayErr := c.say("ask_product_price"); sayErr != nil {
				return nil, sayErr
			}
			continue
		}
		return &price, nil
	}
}

func (c *Conversation) askProductCategory(existing *domain.Product) (*int64, error) {
	ctx := c.actor.Context()
	categories, err := c.services.CatalogService.AllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	noCategory := c.loc.Get("menu_no_category")
	options := []string{noCategory}
	byName := make(map[string]domain.Category, len(categories))
	for _, category := range categories {
		options = append(options, category.Name)
		byName[category.Name] = category
	}
	skip := ""
	if existing != nil {
		skip = c.loc.Get("menu_skip")
		options = append(options, skip)
	}

	if sendErr := c.sayKeyboard(singleColumnKeyboard(options), "ask_product_category"); sendErr != nil {
		return nil, sendErr
	}
	choice, waitErr := c.actor.WaitMessageIn(options, true)
	if waitErr != nil {
		return nil, waitErr
	}
	switch choice {
	case noCategory:
		return nil, nil
	case skip:
		return existing.CategoryID, nil
	default:
		category := byName[choice]
		return &category.ID, nil
	}
}

// askProductImage принимает фото товара или пропуск шага. Скачивается самый
// широкий из присланных вариантов.
func (c *Conversation) askProductImage(productID int64) error {
	ctx := c.actor.Context()
	kb := &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{{c.skipButton()}, {c.cancelButton()}}}
	if _, err := c.sayInline(kb, "ask_product_image"); err != nil {
		return fmt.Errorf("asking product image: %w", err)
	}

	reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{AcceptPhoto: true, Cancellable: true})
	if waitErr != nil {
		return waitErr
	}
	if reply.Callback != nil {
		return nil
	}

	if err := c.say("downloading_image"); err != nil {
		return err
	}
	best := reply.Message.Photos[0]
	for _, photo := range reply.Message.Photos[1:] {
		if photo.Width > best.Width {
			best = photo
		}
	}
	image, downloadErr := c.actor.Sender().DownloadFile(ctx, best.FileID)
	if downloadErr != nil {
		return fmt.Errorf("downloading product image: %w", downloadErr)
	}
	if err := c.services.CatalogService.SetProductImage(ctx, productID, image); err != nil {
		return err
	}
	return nil
}

func (c *Conversation) deleteProduct(products []domain.Product) error {
	var options []string
	byName := make(map[string]domain.Product, len(products))
	for _, product := range products {
		options = append(options, product.Name)
		byName[product.Name] = product
	}
	options = append(options, c.loc.Get("menu_cancel"))

	if err := c.sayKeyboard(singleColumnKeyboard(options), "conversation_admin_select_product_to_delete"); err != nil {
		return err
	}
	choice, waitErr := c.actor.WaitMessageIn(options, false)
	if waitErr != nil {
		return waitErr
	}
	if choice == c.loc.Get("menu_cancel") {
		return nil
	}
	if err := c.services.CatalogService.DeleteProduct(c.actor.Context(), byName[choice].ID); err != nil {
		return err
	}
	return c.say("success_product_deleted")
}

// --- категории ---

func (c *Conversation) categoriesAdmin() error {
	ctx := c.actor.Context()
	categories, err := c.services.CatalogService.AllCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}

	options := []string{c.loc.Get("menu_add_category"), c.loc.Get("menu_delete_category")}
	byName := make(map[string]domain.Category, len(categories))
	for _, category := range categories {
		options = append(options, category.Name)
		byName[category.Name] = category
	}
	options = append(options, c.loc.Get("menu_cancel"))

	if sendErr := c.sayKeyboard(singleColumnKeyboard(options), "conversation_admin_select_category"); sendErr != nil {
		return sendErr
	}
	choice, waitErr := c.actor.WaitMessageIn(options, false)
	if waitErr != nil {
		return waitErr
	}

	switch choice {
	case c.loc.Get("menu_cancel"):
		return nil
	case c.loc.Get("menu_add_category"):
		return c.editCategory(nil, categories)
	case c.loc.Get("menu_delete_category"):
		return c.deleteCategory(categories)
	default:
		category := byName[choice]
		return c.editCategory(&category, categories)
	}
}

func (c *Conversation) editCategory(existing *domain.Category, all []domain.Category) error {
	ctx := c.actor.Context()

	var currentName string
	if existing != nil {
		currentName = existing.Name
	}

	for {
		name, nameErr := c.askText("ask_category_name", currentName, existing != nil)
		if nameErr != nil {
			return nameErr
		}

		parentID, parentErr := c.askParentCategory(existing, all)
		if parentErr != nil {
			return parentErr
		}

		args := repoargs.SaveCategory{Name: name, ParentID: parentID, Active: true}
		successKey := "success_added_category"
		if existing != nil {
			args.ID = existing.ID
			args.Active = existing.Active
			successKey = "success_edited_category"
		}
		if _, saveErr := c.services.CatalogService.SaveCategory(ctx, args); saveErr != nil {
			if errors.Is(saveErr, domain.ErrDuplicateKey) {
				if sayErr := c.say("error_duplicate_name"); sayErr != nil {
					return sayErr
				}
				continue
			}
			return saveErr
		}
		return c.say(successKey, "name", name)
	}
}

func (c *Conversation) askParentCategory(existing *domain.Category, all []domain.Category) (*int64, error) {
	noCategory := c.loc.Get("menu_no_category")
	options := []string{noCategory}
	byName := make(map[string]domain.Category, len(all))
	for _, category := range all {
		// категория не может быть родителем самой себя
		if existing != nil && category.ID == existing.ID {
			continue
		}
		options = append(options, category.Name)
		byName[category.Name] = category
	}

	if err := c.sayKeyboard(singleColumnKeyboard(options), "conversation_admin_select_parent_category"); err != nil {
		return nil, err
	}
	choice, waitErr := c.actor.WaitMessageIn(options, true)
	if waitErr != nil {
		return nil, waitErr
	}
	if choice == noCategory {
		return nil, nil
	}
	category := byName[choice]
	return &category.ID, nil
}

func (c *Conversation) deleteCategory(categories []domain.Category) error {
	var options []string
	byName := make(map[string]domain.Category, len(categories))
	for _, category := range categories {
		options = append(options, category.Name)
		byName[category.Name] = category
	}
	options = append(options, c.loc.Get("menu_cancel"))

	if err := c.sayKeyboard(singleColumnKeyboard(options), "conversation_admin_select_category_to_delete"); err != nil {
		return err
	}
	choice, waitErr := c.actor.WaitMessageIn(options, false)
	if waitErr != nil {
		return waitErr
	}
	if choice == c.loc.Get("menu_cancel") {
		return nil
	}
	if err := c.services.CatalogService.DeleteCategory(c.actor.Context(), byName[choice].ID); err != nil {
		return err
	}
	return c.say("success_category_deleted")
}

// --- живой режим заказов ---

// liveOrders переводит менеджера в поток новых заказов: сперва проигрываются
// необработанные заказы, затем новые приходят от размещающих их сессий.
// Кнопки под каждым заказом выполняют или возвращают его не более одного раза.
func (c *Conversation) liveOrders() error {
	ctx := c.actor.Context()
	if err := c.services.UserService.SetLiveMode(ctx, c.admin.UserID, true); err != nil {
		return err
	}
	defer func() {
		if err := c.services.UserService.SetLiveMode(ctx, c.admin.UserID, false); err != nil {
			c.actor.Logger().WithError(err).Warn("leaving live mode")
		}
	}()

	stop := c.loc.Get("menu_stop")
	keyboard := &telegram.ReplyKeyboard{
		Rows:   [][]telegram.ReplyButton{{{Text: stop}}},
		Resize: true,
	}
	if err := c.sayKeyboard(keyboard, "conversation_live_orders_start"); err != nil {
		return err
	}
	if err := c.say("conversation_live_orders_stop"); err != nil {
		return err
	}

	pending, pendingErr := c.services.OrderService.Pending(ctx)
	if pendingErr != nil {
		return fmt.Errorf("loading pending orders: %w", pendingErr)
	}
	for i := range pending {
		details, detailsErr := c.services.OrderService.Details(ctx, &pending[i])
		if detailsErr != nil {
			return fmt.Errorf("loading pending order: %w", detailsErr)
		}
		if sendErr := c.sendText(c.orderText(details), &telegram.SendOptions{InlineKeyboard: c.liveOrderKeyboard()}); sendErr != nil {
			return sendErr
		}
	}

	for {
		reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{AcceptText: true, Cancellable: true})
		if waitErr != nil {
			// кнопка отмены выводит из потока заказов наравне со Стопом
			if errors.Is(waitErr, session.ErrCancelled) {
				return nil
			}
			return waitErr
		}
		if reply.Message != nil {
			if reply.Message.Text == stop {
				return nil
			}
			continue
		}

		orderID, ok := orderIDFromCallback(reply.Callback)
		if !ok {
			continue
		}
		switch reply.Callback.Data {
		case orderCompleteData:
			if err := c.completeOrder(orderID, reply.Callback); err != nil {
				return err
			}
		case orderRefundData:
			if err := c.refundOrder(orderID, reply.Callback); err != nil && !errors.Is(err, session.ErrCancelled) {
				return err
			}
		}
	}
}

// orderIDFromCallback восстанавливает номер заказа из текста сообщения,
// к которому была прикреплена кнопка.
func orderIDFromCallback(cb *telegram.Callback) (int64, bool) {
	match := orderIDPattern.FindStringSubmatch(cb.MessageText)
	if match == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (c *Conversation) completeOrder(orderID int64, cb *telegram.Callback) error {
	ctx := c.actor.Context()
	order, err := c.services.OrderService.Deliver(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return c.say("error_order_already_cleared")
		}
		return fmt.Errorf("completing order %d: %w", orderID, err)
	}

	// убираем кнопки с обработанного заказа
	if editErr := c.actor.Sender().EditText(ctx, c.actor.ChatID(), cb.MessageID,
		cb.MessageText+"\n\n"+c.loc.Get("emoji_completed")+" "+c.loc.Get("text_completed"), nil); editErr != nil {
		c.actor.Logger().WithError(editErr).Warn("updating completed order message")
	}

	details, detailsErr := c.services.OrderService.Details(ctx, order)
	if detailsErr != nil {
		return fmt.Errorf("loading completed order: %w", detailsErr)
	}
	c.notify(order.UserID, c.loc.Get("notification_order_completed", "order", c.userOrderText(details)), nil)
	return nil
}

func (c *Conversation) refundOrder(orderID int64, cb *telegram.Callback) error {
	ctx := c.actor.Context()
	kb := &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{{c.cancelButton()}}}
	if _, err := c.sayInline(kb, "ask_refund_reason"); err != nil {
		return fmt.Errorf("asking refund reason: %w", err)
	}

	var reason string
	for reason == "" {
		reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{AcceptText: true, Cancellable: true})
		if waitErr != nil {
			return waitErr
		}
		if reply.Message != nil {
			reason = reply.Message.Text
		}
	}

	order, refundErr := c.services.OrderService.Refund(ctx, orderID, reason)
	if refundErr != nil {
		if errors.Is(refundErr, domain.ErrRecordNotFound) {
			return c.say("error_order_already_cleared")
		}
		return fmt.Errorf("refunding order %d: %w", orderID, refundErr)
	}

	if editErr := c.actor.Sender().EditText(ctx, c.actor.ChatID(), cb.MessageID,
		cb.MessageText+"\n\n"+c.loc.Get("emoji_refunded")+" "+c.loc.Get("text_refunded"), nil); editErr != nil {
		c.actor.Logger().WithError(editErr).Warn("updating refunded order message")
	}

	details, detailsErr := c.services.OrderService.Details(ctx, order)
	if detailsErr != nil {
		return fmt.Errorf("loading refunded order: %w", detailsErr)
	}
	c.notify(order.UserID, c.loc.Get("notification_order_refunded", "order", c.userOrderText(details)), nil)

	return c.say("success_order_refunded", "order_id", strconv.FormatInt(orderID, 10))
}

// --- менеджеры ---

// editAdmins позволяет владельцу повышать пользователей и переключать их права.
func (c *Conversation) editAdmins() error {
	ctx := c.actor.Context()
	users, err := c.services.UserService.List(ctx)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}

	var options []string
	for i := range users {
		options = append(options, users[i].IdentifiableString())
	}
	if sendErr := c.sayKeyboard(singleColumnKeyboard(options), "conversation_admin_select_user"); sendErr != nil {
		return sendErr
	}
	kb := &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{{c.cancelButton()}}}
	if _, inlineErr := c.actor.Sender().SendText(ctx, c.actor.ChatID(), c.loc.Get("menu_cancel"),
		&telegram.SendOptions{InlineKeyboard: kb}); inlineErr != nil {
		return fmt.Errorf("sending cancel button: %w", inlineErr)
	}

	idStr, waitErr := c.actor.WaitRegex(userIDRe, true)
	if waitErr != nil {
		return waitErr
	}
	userID, _ := strconv.ParseInt(idStr, 10, 64)

	target, findErr := c.services.UserService.Find(ctx, userID)
	if findErr != nil {
		if errors.Is(findErr, domain.ErrRecordNotFound) {
			return c.say("error_user_does_not_exist")
		}
		return fmt.Errorf("loading user %d: %w", userID, findErr)
	}

	admin, adminErr := c.services.UserService.FindAdmin(ctx, userID)
	if adminErr != nil {
		if !errors.Is(adminErr, domain.ErrRecordNotFound) {
			return fmt.Errorf("loading admin record: %w", adminErr)
		}
		promoted, promoteErr := c.promote(target)
		if promoteErr != nil || promoted == nil {
			return promoteErr
		}
		admin = promoted
	}
	return c.editAdminFlags(target, admin)
}

// promote спрашивает подтверждение и заводит запись менеджера. Возвращает
// nil, nil при отказе.
func (c *Conversation) promote(target *domain.User) (*domain.Admin, error) {
	kb := &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{
		{{Text: c.loc.Get("emoji_yes"), Data: doneCallbackData}},
		{{Text: c.loc.Get("emoji_no"), Data: telegram.CancelCallbackData}},
	}}
	if _, err := c.sayInline(kb, "conversation_confirm_admin_promotion"); err != nil {
		return nil, fmt.Errorf("asking promotion confirmation: %w", err)
	}
	for {
		reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{Cancellable: true})
		if waitErr != nil {
			if errors.Is(waitErr, session.ErrCancelled) {
				return nil, nil
			}
			return nil, waitErr
		}
		if reply.Callback.Data == doneCallbackData {
			admin, promoteErr := c.services.UserService.Promote(c.actor.Context(), target.ID)
			if promoteErr != nil {
				return nil, promoteErr
			}
			return admin, nil
		}
	}
}

func (c *Conversation) editAdminFlags(target *domain.User, admin *domain.Admin) error {
	ctx := c.actor.Context()
	messageID, sendErr := c.sayInline(c.adminFlagsKeyboard(admin), "admin_properties", "name", target.String())
	if sendErr != nil {
		return fmt.Errorf("sending admin properties: %w", sendErr)
	}

	for {
		reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{Cancellable: true})
		if waitErr != nil {
			return waitErr
		}
		switch reply.Callback.Data {
		case doneCallbackData:
			return nil
		case toggleEditProductsData:
			admin.EditProducts = !admin.EditProducts
		case toggleReceiveOrdersData:
			admin.ReceiveOrders = !admin.ReceiveOrders
		case toggleDisplayOnHelpData:
			admin.DisplayOnHelp = !admin.DisplayOnHelp
		default:
			continue
		}

		if updErr := c.services.UserService.UpdateAdminFlags(ctx, repoargs.AdminFlags{
			UserID:        admin.UserID,
			EditProducts:  admin.EditProducts,
			ReceiveOrders: admin.ReceiveOrders,
			DisplayOnHelp: admin.DisplayOnHelp,
			IsOwner:       admin.IsOwner,
			LiveMode:      admin.LiveMode,
		}); updErr != nil {
			return updErr
		}
		if editErr := c.actor.Sender().EditReplyMarkup(ctx, c.actor.ChatID(), messageID, c.adminFlagsKeyboard(admin)); editErr != nil {
			c.actor.Logger().WithError(editErr).Warn("updating admin properties keyboard")
		}
	}
}

func (c *Conversation) adminFlagsKeyboard(admin *domain.Admin) *telegram.InlineKeyboard {
	return &telegram.InlineKeyboard{Rows: [][]telegram.InlineButton{
		{{Text: c.loc.BoolEmoji(admin.EditProducts) + " " + c.loc.Get("prop_edit_products"), Data: toggleEditProductsData}},
		{{Text: c.loc.BoolEmoji(admin.ReceiveOrders) + " " + c.loc.Get("prop_receive_orders"), Data: toggleReceiveOrdersData}},
		{{Text: c.loc.BoolEmoji(admin.DisplayOnHelp) + " " + c.loc.Get("prop_display_on_help"), Data: toggleDisplayOnHelpData}},
		{{Text: c.loc.Get("menu_done"), Data: doneCallbackData}},
	}}
}

// askText — общий шаг ввода строки. При skippable прикрепляется кнопка
// Пропустить, возвращающая current без изменений.
func (c *Conversation) askText(promptKey string, current string, skippable bool) (string, error) {
	var rows [][]telegram.InlineButton
	if skippable {
		rows = append(rows, []telegram.InlineButton{c.skipButton()})
	}
	rows = append(rows, []telegram.InlineButton{c.cancelButton()})

	if _, err := c.sayInline(&telegram.InlineKeyboard{Rows: rows}, promptKey); err != nil {
		return "", fmt.Errorf("asking %s: %w", promptKey, err)
	}
	if skippable && current != "" {
		if err := c.say("edit_current_value", "value", current); err != nil {
			return "", err
		}
	}

	for {
		reply, waitErr := c.actor.WaitCallback(session.CallbackOptions{AcceptText: true, Cancellable: true})
		if waitErr != nil {
			return "", waitErr
		}
		if reply.Callback != nil {
			if reply.Callback.Data == skipCallbackData && skippable {
				return current, nil
			}
			continue
		}
		return reply.Message.Text, nil
	}
}
