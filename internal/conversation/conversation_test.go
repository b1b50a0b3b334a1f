package conversation

import (
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkhin/shopbot/internal/domain"
	"github.com/avolkhin/shopbot/internal/localization"
	"github.com/avolkhin/shopbot/internal/metrics"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/memrepo"
	"github.com/avolkhin/shopbot/internal/service"
	"github.com/avolkhin/shopbot/internal/session"
	"github.com/avolkhin/shopbot/internal/telegram"
	"github.com/avolkhin/shopbot/internal/telegram/telegramtest"
)

// testEnv гоняет беседу на настоящем акторе поверх in-memory хранилища.
// События закладываются в очередь заранее, сценарий разбирает их по шагам.
type testEnv struct {
	store   *memrepo.Store
	sender  *telegramtest.Sender
	actor   *session.Actor
	metrics *metrics.Metrics
	userID  int64
}

func startConversation(t *testing.T, store *memrepo.Store, userID int64, idle time.Duration) *testEnv {
	t.Helper()

	services, err := service.Factory(memrepo.NewUnitOfWork(store))
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	sender := telegramtest.NewSender()
	m := metrics.New(prometheus.NewRegistry())
	actor := session.NewActor(session.ActorArgs{
		ChatID:      userID,
		IdleTimeout: idle,
		Sender:      sender,
		Logger:      logger,
	})

	first := &telegram.Update{
		UserID:    userID,
		ChatID:    userID,
		FirstName: "Вася",
		Language:  "ru",
		Message:   &telegram.Message{Text: "/start"},
	}
	factory := NewFactory(services, m, Config{
		CurrencySymbol:   "₽",
		EnabledLanguages: []string{"ru", "en"},
		DefaultLanguage:  "ru",
		FallbackLanguage: "en",
	})
	actor.Start(factory(actor, first))
	actor.Post(first)

	env := &testEnv{store: store, sender: sender, actor: actor, metrics: m, userID: userID}
	t.Cleanup(func() { actor.Stop(session.StopReasonShutdown) })
	return env
}

func (e *testEnv) text(text string) {
	e.actor.Post(&telegram.Update{
		UserID:  e.userID,
		ChatID:  e.userID,
		Message: &telegram.Message{Text: text},
	})
}

func (e *testEnv) callback(data string) {
	e.callbackOn(data, "")
}

func (e *testEnv) callbackOn(data string, messageText string) {
	e.actor.Post(&telegram.Update{
		UserID:   e.userID,
		ChatID:   e.userID,
		Callback: &telegram.Callback{ID: "cb-" + data, Data: data, MessageText: messageText},
	})
}

func ruStrings() *localization.Localization {
	return localization.New(localization.Args{Language: "ru", Fallback: "en"})
}

func containsText(texts []string, substr string) bool {
	for _, text := range texts {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

// Полный путь покупателя: каталог, степпер количества, корзина, самовывоз,
// телефон, подтверждение. В итоге ровно один заказ, две позиции и одна
// транзакция списания на полную сумму.
func TestConversationCheckout(t *testing.T) {
	loc := ruStrings()
	store := memrepo.NewStore()
	store.SeedAdmin(domain.Admin{UserID: 1, IsOwner: true, EditProducts: true, ReceiveOrders: true})
	store.SeedCategory(domain.Category{ID: 1, Name: "Пиццы", Active: true})
	categoryID := int64(1)
	price := money.MustParse("500")
	store.SeedProduct(domain.Product{Name: "Маргарита", Description: "С сыром", Price: &price, CategoryID: &categoryID})

	env := startConversation(t, store, 100, 5*time.Second)

	env.text(loc.Get("menu_order"))
	env.text("🗂 Пиццы")
	env.text("Маргарита")
	env.callback("qty_plus")
	env.callback(doneCallbackData)
	env.text(loc.Get("menu_cart"))
	env.callback(doneCallbackData)
	env.text(loc.Get("menu_pickup"))
	env.text("+7 900 123-45-67")
	env.callback(skipCallbackData)
	env.callback(doneCallbackData)

	require.Eventually(t, func() bool {
		return len(store.Orders()) == 1 && len(store.Transactions()) == 1
	}, 3*time.Second, 10*time.Millisecond)

	order := store.Orders()[0]
	assert.Equal(t, int64(100), order.UserID)
	assert.True(t, order.IsPickup)
	assert.Equal(t, "+7 900 123-45-67", order.Phone)
	assert.Nil(t, order.AddressID)

	items := store.OrderItems()
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.Nil(t, item.SizeID)
	}

	trans := store.Transactions()[0]
	assert.True(t, trans.Value.Equal(money.MustParse("1000").Neg()),
		"expected -1000.00, got %s", trans.Value.String())
	require.NotNil(t, trans.OrderID)
	assert.Equal(t, order.ID, *trans.OrderID)

	require.Eventually(t, func() bool {
		return containsText(env.sender.TextsTo(100), "✅ Заказ успешно создан!")
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.OrdersPlaced))
}

// Мусорный номер телефона переспрашивается, заказ при этом не размещается.
func TestConversationCheckoutRejectsBadPhone(t *testing.T) {
	loc := ruStrings()
	store := memrepo.NewStore()
	store.SeedAdmin(domain.Admin{UserID: 1, IsOwner: true})
	price := money.MustParse("500")
	store.SeedProduct(domain.Product{Name: "Пицца", Price: &price})

	env := startConversation(t, store, 100, 5*time.Second)

	env.text(loc.Get("menu_order"))
	env.text("Пицца")
	env.callback(doneCallbackData)
	env.text(loc.Get("menu_cart"))
	env.callback(doneCallbackData)
	env.text(loc.Get("menu_pickup"))
	env.text("позвоните мне сами")

	require.Eventually(t, func() bool {
		return containsText(env.sender.TextsTo(100), loc.Get("error_invalid_phone"))
	}, 3*time.Second, 10*time.Millisecond)
	assert.Empty(t, store.Orders())
}

// Менеджер создает продукт. Имя, совпадающее с существующим продуктом,
// переспрашивается и ничего не меняет в каталоге.
func TestConversationAdminCreateProductDuplicateName(t *testing.T) {
	loc := ruStrings()
	store := memrepo.NewStore()
	store.SeedUser(domain.User{ID: 1, FirstName: "Оля", Username: "olya", Language: "ru"})
	store.SeedAdmin(domain.Admin{
		UserID: 1, IsOwner: true, EditProducts: true, ReceiveOrders: true, DisplayOnHelp: true,
	})
	price := money.MustParse("500")
	store.SeedProduct(domain.Product{Name: "Пицца", Price: &price})

	env := startConversation(t, store, 1, 5*time.Second)

	env.text(loc.Get("menu_products"))
	env.text(loc.Get("menu_add_product"))
	env.text("Пицца") // дубликат, будет отвергнут
	env.text("Салат")
	env.text("Свежий и зеленый")
	env.text("x") // без размеров
	env.text("250")
	env.text(loc.Get("menu_no_category"))
	env.callback(skipCallbackData) // без фото

	require.Eventually(t, func() bool {
		return containsText(env.sender.TextsTo(1), loc.Get("success_product_edited"))
	}, 3*time.Second, 10*time.Millisecond)

	assert.True(t, containsText(env.sender.TextsTo(1), loc.Get("error_duplicate_name")))

	products := store.Products()
	require.Len(t, products, 2)
	var created *domain.Product
	pizzas := 0
	for i := range products {
		switch products[i].Name {
		case "Пицца":
			pizzas++
		case "Салат":
			created = &products[i]
		}
	}
	assert.Equal(t, 1, pizzas)
	require.NotNil(t, created)
	assert.Equal(t, "Свежий и зеленый", created.Description)
	require.NotNil(t, created.Price)
	assert.True(t, created.Price.Equal(money.MustParse("250")))
}

// Живой режим: возврат заказа срабатывает ровно один раз, покупатель получает
// уведомление, повторная попытка отвечает ошибкой и ничего не меняет.
func TestConversationLiveRefundExactlyOnce(t *testing.T) {
	loc := ruStrings()
	store := memrepo.NewStore()
	store.SeedUser(domain.User{ID: 1, FirstName: "Оля", Language: "ru"})
	store.SeedUser(domain.User{ID: 100, FirstName: "Вася", Language: "ru"})
	store.SeedAdmin(domain.Admin{UserID: 1, IsOwner: true, EditProducts: true, ReceiveOrders: true})
	price := money.MustParse("500")
	productID := store.SeedProduct(domain.Product{Name: "Пицца", Price: &price})
	orderID := store.SeedOrder(
		domain.Order{UserID: 100, IsPickup: true, Phone: "+7 900 000-00-00"},
		[]domain.OrderItem{{ProductID: productID}},
		money.MustParse("500").Neg(),
	)
	orderRef := loc.Get("order_number", "id", strconv.FormatInt(orderID, 10))

	env := startConversation(t, store, 1, 5*time.Second)

	env.text(loc.Get("menu_orders"))
	env.callbackOn(orderRefundData, orderRef)
	env.text("Кончилось тесто")
	// повторный возврат того же заказа
	env.callbackOn(orderRefundData, orderRef)
	env.text("повтор")
	env.text(loc.Get("menu_stop"))

	require.Eventually(t, func() bool {
		return containsText(env.sender.TextsTo(1), loc.Get("error_order_already_cleared"))
	}, 3*time.Second, 10*time.Millisecond)

	order := store.Orders()[0]
	require.NotNil(t, order.RefundDate)
	assert.Nil(t, order.DeliveryDate)
	assert.Equal(t, "Кончилось тесто", order.RefundReason)

	trans := store.Transactions()[0]
	assert.True(t, trans.Refunded)
	// сумма транзакции при возврате не меняется
	assert.True(t, trans.Value.Equal(money.MustParse("500").Neg()))

	texts := env.sender.TextsTo(1)
	assert.True(t, containsText(texts, loc.Get("success_order_refunded", "order_id", strconv.FormatInt(orderID, 10))))

	// покупатель узнает о возврате ровно один раз
	notified := 0
	for _, text := range env.sender.TextsTo(100) {
		if strings.Contains(text, "Ваш заказ отменен") {
			notified++
		}
	}
	assert.Equal(t, 1, notified)

	// выход из живого режима снимает флаг
	require.Eventually(t, func() bool {
		return !store.Admins()[0].LiveMode
	}, 3*time.Second, 10*time.Millisecond)
}

// Кнопка отмены выводит менеджера из живого режима так же, как Стоп:
// флаг снимается, беседа возвращается в меню менеджера.
func TestConversationLiveModeCancelExits(t *testing.T) {
	loc := ruStrings()
	store := memrepo.NewStore()
	store.SeedUser(domain.User{ID: 1, FirstName: "Оля", Language: "ru"})
	store.SeedAdmin(domain.Admin{UserID: 1, IsOwner: true, EditProducts: true, ReceiveOrders: true})

	env := startConversation(t, store, 1, 5*time.Second)

	env.text(loc.Get("menu_orders"))
	require.Eventually(t, func() bool {
		return store.Admins()[0].LiveMode
	}, 3*time.Second, 10*time.Millisecond)

	env.actor.Cancel()

	require.Eventually(t, func() bool {
		return !store.Admins()[0].LiveMode
	}, 3*time.Second, 10*time.Millisecond)

	// меню менеджера показано заново после выхода из потока заказов
	require.Eventually(t, func() bool {
		shown := 0
		for _, text := range env.sender.TextsTo(1) {
			if strings.Contains(text, loc.Get("conversation_open_admin_menu")) {
				shown++
			}
		}
		return shown == 2
	}, 3*time.Second, 10*time.Millisecond)
}

// Редактирование товара с размерами: пропуск шага размеров оставляет прежний
// набор, а базовая цена не спрашивается вовсе.
func TestConversationAdminEditKeepsSizesWithoutPricePrompt(t *testing.T) {
	loc := ruStrings()
	store := memrepo.NewStore()
	store.SeedUser(domain.User{ID: 1, FirstName: "Оля", Language: "ru"})
	store.SeedAdmin(domain.Admin{UserID: 1, IsOwner: true, EditProducts: true, ReceiveOrders: true})
	store.SeedProduct(domain.Product{Name: "Пицца", Description: "Тонкое тесто"},
		domain.Size{Name: "32 см", Price: money.MustParse("350")},
		domain.Size{Name: "40 см", Price: money.MustParse("750")})

	env := startConversation(t, store, 1, 5*time.Second)

	env.text(loc.Get("menu_products"))
	env.text("Пицца")
	env.callback(skipCallbackData) // имя
	env.callback(skipCallbackData) // описание
	env.callback(skipCallbackData) // размеры остаются прежними
	env.text(loc.Get("menu_skip")) // категория
	env.callback(skipCallbackData) // фото

	require.Eventually(t, func() bool {
		return containsText(env.sender.TextsTo(1), loc.Get("success_product_edited"))
	}, 3*time.Second, 10*time.Millisecond)

	assert.False(t, containsText(env.sender.TextsTo(1), loc.Get("ask_product_price")))

	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Пицца", products[0].Name)
	assert.Nil(t, products[0].Price)
	assert.Len(t, store.Sizes(), 2)
}

// Простой сессии завершает беседу прощальным сообщением и счетчиком.
func TestConversationIdleTimeoutFarewell(t *testing.T) {
	loc := ruStrings()
	store := memrepo.NewStore()
	store.SeedAdmin(domain.Admin{UserID: 1, IsOwner: true})

	env := startConversation(t, store, 100, 40*time.Millisecond)

	select {
	case <-env.actor.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("conversation did not expire")
	}

	texts := env.sender.TextsTo(100)
	require.NotEmpty(t, texts)
	assert.Equal(t, loc.Get("conversation_expired"), texts[len(texts)-1])
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SessionsExpired))
}
