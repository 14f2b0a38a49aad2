/*
Package calc implements an interactive calculator.

Grammar

	statement  --> ( ";" )* ( "q" | expression ) ;
	expression --> term ( ( "+" | "-" ) term )* ;
	term       --> primary ( ( "*" | "/" | "%" ) primary )* ;
	primary    --> NUMBER
	             | NAME ( "=" expression )?
	             | "(" expression ")"
	             | "-" primary ;

Expressions are evaluated while they are parsed. Binary operators are left
associative, unary minus binds tighter than all of them.

Variables hold the text of the expression they were assigned, not its value.
Reading a variable evaluates that text again:

	x = 2;
	y = x + 1;
	x = 10;
	y;          // = 11

"%" truncates both of its operands to integers before taking the remainder.
Operands that are not finite or do not fit in 64 bits are rejected.
*/
package calc
