package livedemo

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"
)

// itemType is the GraphQL rendering of Item, grounded on laura-db's
// pkg/graphql/schema.go Document object type.
var itemType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "Item",
	Description: "An entry in the demo inventory cache",
	Fields: graphql.Fields{
		"key": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.String),
			Description: "Unique item key",
		},
		"price": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.Int),
			Description: "Item price",
		},
	},
})

// buildSchema wires the query/mutation root types against the server's
// cache, the same shape as laura-db's Schema(db *database.Database): one
// object type per resource, one resolver closure per field.
func (s *Server) buildSchema() (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Query",
		Description: "Root query type for the inventory cache",
		Fields: graphql.Fields{
			"item": &graphql.Field{
				Type:        itemType,
				Description: "Look up a single item by key",
				Args: graphql.FieldConfigArgument{
					"key": &graphql.ArgumentConfig{
						Type:        graphql.NewNonNull(graphql.String),
						Description: "Item key",
					},
				},
				Resolve: s.resolveItem,
			},
			"items": &graphql.Field{
				Type:        graphql.NewList(itemType),
				Description: "List every item currently in the cache",
				Resolve:     s.resolveItems,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Mutation",
		Description: "Root mutation type for the inventory cache",
		Fields: graphql.Fields{
			"putItem": &graphql.Field{
				Type:        itemType,
				Description: "Add or replace an item",
				Args: graphql.FieldConfigArgument{
					"key": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
					"price": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.Int),
					},
				},
				Resolve: s.resolvePutItem,
			},
			"removeItem": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Boolean),
				Description: "Remove an item by key",
				Args: graphql.FieldConfigArgument{
					"key": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: s.resolveRemoveItem,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func (s *Server) resolveItem(p graphql.ResolveParams) (interface{}, error) {
	key, _ := p.Args["key"].(string)
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items.TryGetValue(key)
	if !ok {
		return nil, nil
	}
	return it, nil
}

func (s *Server) resolveItems(p graphql.ResolveParams) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.items.Snapshot()
	out := make([]Item, 0, len(snapshot))
	for _, it := range snapshot {
		out = append(out, it)
	}
	return out, nil
}

func (s *Server) resolvePutItem(p graphql.ResolveParams) (interface{}, error) {
	key, _ := p.Args["key"].(string)
	price, _ := p.Args["price"].(int)
	it := Item{Key: key, Price: price}
	s.mu.Lock()
	s.items.AddOrUpdate(it)
	s.mu.Unlock()
	return it, nil
}

func (s *Server) resolveRemoveItem(p graphql.ResolveParams) (interface{}, error) {
	key, _ := p.Args["key"].(string)
	s.mu.Lock()
	removed := s.items.RemoveKey(key)
	s.mu.Unlock()
	return removed, nil
}

// graphqlRequest is the HTTP envelope for a GraphQL request.
type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "GraphQL only accepts POST requests", http.StatusMethodNotAllowed)
		return
	}

	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         s.gqlSchema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleGraphiQL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(graphiqlHTML))
}

// setupGraphQLRoutes builds the schema once at startup and mounts the
// /graphql and /graphiql endpoints.
func (s *Server) setupGraphQLRoutes() error {
	schema, err := s.buildSchema()
	if err != nil {
		return fmt.Errorf("failed to build GraphQL schema: %w", err)
	}
	s.gqlSchema = schema
	s.router.Post("/graphql", s.handleGraphQL)
	s.router.Get("/graphiql", s.handleGraphiQL)
	return nil
}

const graphiqlHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Inventory Cache GraphiQL</title>
    <style>
        body { height: 100vh; margin: 0; width: 100%; overflow: hidden; }
        #graphiql { height: 100vh; }
    </style>
    <script crossorigin src="https://unpkg.com/react@17/umd/react.production.min.js"></script>
    <script crossorigin src="https://unpkg.com/react-dom@17/umd/react-dom.production.min.js"></script>
    <link rel="stylesheet" href="https://unpkg.com/graphiql@1.8.7/graphiql.min.css" />
</head>
<body>
    <div id="graphiql">Loading...</div>
    <script src="https://unpkg.com/graphiql@1.8.7/graphiql.min.js" type="application/javascript"></script>
    <script>
        const fetcher = GraphiQL.createFetcher({ url: '/graphql' });
        ReactDOM.render(
            React.createElement(GraphiQL, {
                fetcher: fetcher,
                defaultQuery: '# query {\n#   items { key price }\n# }\n',
            }),
            document.getElementById('graphiql'),
        );
    </script>
</body>
</html>
`
