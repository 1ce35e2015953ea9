package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"
)

// 端到端冒烟脚本：注册 → 建目录 → 建菜谱 → 收藏 → 购物清单 →
// 缩放预览 → 计价 → 下单 → 查单。任何一步失败立刻退出。
func main() {
	baseURL := flag.String("base", "http://localhost:8080", "server base url")
	adminToken := flag.String("admin-token", "dev-admin-token", "admin token for catalog endpoints")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}
	suffix := time.Now().UnixNano() % 1_000_000

	// 1) 注册并拿到令牌
	var registered struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	must(postJSON(client, *baseURL+"/api/auth/register", map[string]any{
		"username":    fmt.Sprintf("smoke%d", suffix),
		"email":       fmt.Sprintf("smoke%d@example.com", suffix),
		"password":    "smoke-pass-123",
		"profileName": "Smoke Tester",
	}, nil, &registered), "register")
	authHeaders := map[string]string{"Authorization": "Bearer " + registered.Token}
	fmt.Println("registered user", registered.User.ID)

	// 2) 管理端录入价格目录（重复运行时 409 可接受）
	adminHeaders := map[string]string{"X-Admin-Token": *adminToken}
	for _, ing := range []map[string]any{
		{"name": "Rice", "unit": "kg", "pricePerUnit": 60},
		{"name": "Dal", "unit": "kg", "pricePerUnit": 120},
	} {
		if err := postJSON(client, *baseURL+"/api/ingredients", ing, adminHeaders, nil); err != nil {
			fmt.Println("catalog insert skipped:", err)
		}
	}

	// 3) 建菜谱
	var created struct {
		Recipe struct {
			ID uint `json:"id"`
		} `json:"recipe"`
	}
	must(postJSON(client, *baseURL+"/api/recipes", map[string]any{
		"name":        "Dal Rice",
		"description": "Weeknight staple",
		"procedure":   "Cook rice.\nCook dal.\nServe together.",
		"type":        "main",
		"diet":        "veg",
		"ingredients": []map[string]string{
			{"name": "Rice", "quantity": "0.5 kg"},
			{"name": "Dal", "quantity": "0.25 kg"},
		},
	}, authHeaders, &created), "create recipe")
	recipeID := created.Recipe.ID
	fmt.Println("created recipe", recipeID)

	// 4) 收藏 → 购物清单
	must(postJSON(client, *baseURL+"/api/bookmarks", map[string]any{
		"recipeIds": []uint{recipeID},
	}, authHeaders, nil), "bookmark")
	must(postJSON(client, *baseURL+"/api/shopping-list/add", map[string]any{
		"recipeIds": []uint{recipeID},
	}, authHeaders, nil), "shopping list add")

	// 5) 按 2 大人缩放预览
	var scaled struct {
		Recipes []struct {
			Ingredients []struct {
				Name     string `json:"name"`
				Quantity string `json:"quantity"`
			} `json:"ingredients"`
		} `json:"recipes"`
	}
	must(postJSON(client, *baseURL+"/api/shopping-list/calculate", map[string]any{
		"selections": []map[string]any{{"recipeId": recipeID, "adults": 2, "kids": 0}},
	}, authHeaders, &scaled), "scale preview")
	if len(scaled.Recipes) != 1 {
		fail("scale preview returned %d recipes, want 1", len(scaled.Recipes))
	}
	fmt.Println("scaled ingredients:", scaled.Recipes[0].Ingredients)

	// 6) 计价
	priceReq := map[string]any{"ingredients": scaled.Recipes[0].Ingredients}
	var quote struct {
		Items []struct {
			Name     string  `json:"name"`
			Quantity string  `json:"quantity"`
			Price    float64 `json:"price"`
		} `json:"items"`
		TotalPrice float64 `json:"totalPrice"`
	}
	must(postJSON(client, *baseURL+"/api/ingredients/calculate", priceReq, nil, &quote), "calculate price")
	fmt.Println("quote total:", quote.TotalPrice)

	// 7) 下单
	items := make([]map[string]any, 0, 1)
	ingredients := make([]map[string]any, 0, len(quote.Items))
	for _, it := range quote.Items {
		ingredients = append(ingredients, map[string]any{
			"name": it.Name, "quantity": it.Quantity, "price": it.Price,
		})
	}
	items = append(items, map[string]any{
		"recipe":      fmt.Sprint(recipeID),
		"name":        "Dal Rice",
		"price":       quote.TotalPrice,
		"ingredients": ingredients,
	})
	var placed struct {
		OrderID    string  `json:"orderId"`
		TotalPrice float64 `json:"totalPrice"`
		ItemCount  int     `json:"itemCount"`
	}
	must(postJSON(client, *baseURL+"/api/orders", map[string]any{
		"recipeIds":       []string{fmt.Sprint(recipeID)},
		"deliveryAddress": "221B Baker St",
		"items":           items,
		"totalPrice":      quote.TotalPrice,
	}, authHeaders, &placed), "place order")
	fmt.Printf("order placed: id=%s total=%.2f items=%d\n", placed.OrderID, placed.TotalPrice, placed.ItemCount)

	// 8) 回查订单，确认落库与清单扣除
	var fetched struct {
		Order struct {
			OrderID string `json:"orderId"`
			Status  string `json:"status"`
		} `json:"order"`
	}
	must(getJSON(client, *baseURL+"/api/orders/"+placed.OrderID, authHeaders, &fetched), "get order")
	fmt.Println("order status:", fetched.Order.Status)

	var list struct {
		ShoppingList []any `json:"shoppingList"`
	}
	must(getJSON(client, *baseURL+"/api/shopping-list", authHeaders, &list), "get shopping list")
	if len(list.ShoppingList) != 0 {
		fail("shopping list still has %d recipes after checkout", len(list.ShoppingList))
	}

	fmt.Println("smoke OK")
}

func must(err error, step string) {
	if err != nil {
		fail("%s: %v", step, err)
	}
}

func fail(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// postJSON 发送 POST 并把 2xx 响应解码进 out（out 可为 nil）。
func postJSON(client *http.Client, url string, body any, headers map[string]string, out any) error {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return do(client, req, out)
}

// getJSON 发送 GET 并把 2xx 响应解码进 out。
func getJSON(client *http.Client, url string, headers map[string]string, out any) error {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return do(client, req, out)
}

func do(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}
	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}
