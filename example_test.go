package declient_test

import (
	"context"
	"fmt"
	"time"

	declient "github.com/ShindouMihou/declient"
)

func ExampleNew() {
	client := declient.New(
		declient.WithBaseURL("https://api.example.com"),
		declient.WithHeader("X-Api-Key", "secret"),
		declient.WithTimeout(5*time.Second),
		declient.WithResource("users", declient.ResourceConfig{
			Prefix: "/users",
			Routes: map[string]declient.RouteFunc{
				"get": func(args ...any) declient.Descriptor {
					return declient.Path(fmt.Sprintf("/%v", args[0]))
				},
				"create": func(args ...any) declient.Descriptor {
					return &declient.RouteOptions{Method: "POST", Route: "/", Body: args[0]}
				},
			},
		}),
	)

	res, err := client.Call(context.Background(), "users", "get", 1)
	if err != nil {
		fmt.Println("call failed:", err)
		return
	}
	fmt.Println(res.StatusCode)
}

type exampleUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func ExampleAs() {
	res := &declient.Result{
		StatusCode: 200,
		Body:       []byte(`{"id":1,"name":"mihou"}`),
	}

	user, err := declient.As[exampleUser](res)
	if err != nil {
		fmt.Println("decode failed:", err)
		return
	}
	fmt.Println(user.Name)
	// Output: mihou
}

func ExampleDecodeRoute() {
	endpoint, _ := declient.DecodeRoute("", "POST /users")
	fmt.Println(endpoint.Method, endpoint.Path)
	// Output: POST /users
}
